// Package analysis inspects recorded cloth runs.
//
//   - [PowerSpectrum]: magnitude spectrum of a metric series
//   - [DominantFrequency]: strongest non-DC frequency of a series
//   - [ParamSweep]: reruns the cloth across a parameter range
//
// # Flutter
//
// The depth wave drives the cloth at a fixed phase rate, so the mean depth
// series of an untouched cloth has a clear spectral peak:
//
//	freq, _ := analysis.DominantFrequency(result.Series["mean_depth"], dt)
package analysis
