package transcode

import "fmt"

// Resample converts a signal to the target sample rate using linear
// interpolation between neighboring samples. Signals already at the target
// rate are returned as-is.
//
// The decoder normally resamples during decode; this path exists for callers
// that hand over already-decoded PCM at a foreign rate.
func Resample(signal *AudioSignal, targetRate int) (*AudioSignal, error) {
	if signal == nil || len(signal.Samples) == 0 {
		return nil, fmt.Errorf("cannot resample empty signal")
	}
	if signal.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid source sample rate: %d", signal.SampleRate)
	}
	if targetRate <= 0 {
		return nil, fmt.Errorf("invalid target sample rate: %d", targetRate)
	}

	if signal.SampleRate == targetRate {
		return signal, nil
	}

	ratio := float64(signal.SampleRate) / float64(targetRate)
	outLen := int(float64(len(signal.Samples)) / ratio)
	if outLen < 1 {
		outLen = 1
	}

	out := make([]float64, outLen)
	for i := range out {
		srcPos := float64(i) * ratio
		left := int(srcPos)
		if left >= len(signal.Samples)-1 {
			out[i] = signal.Samples[len(signal.Samples)-1]
			continue
		}
		t := srcPos - float64(left)
		out[i] = signal.Samples[left] + t*(signal.Samples[left+1]-signal.Samples[left])
	}

	return &AudioSignal{
		Samples:    out,
		SampleRate: targetRate,
	}, nil
}
