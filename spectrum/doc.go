// SPDX-License-Identifier: EPL-2.0

// Package spectrum computes short-time Fourier magnitudes in decibels.
//
// Frames are Hamming-windowed, rotated so the frame centre sits at time
// zero, transformed with gonum's real FFT and reduced to the n/2+1
// non-redundant bins. For input in [-1, 1] values fall roughly within
// [-150, 0] dB; nothing here clamps them, see Level for display scaling.
package spectrum
