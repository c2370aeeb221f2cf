package grid

import "gonum.org/v1/gonum/floats"

// Normalize divides each of the first NumChannels raw readings by its
// calibration factor. Extra entries in either buffer are ignored.
func Normalize(raw SensorFrame, cal CalibrationVector) (NormalizedVector, error) {
	var out NormalizedVector
	if err := checkLen(BufferRaw, len(raw)); err != nil {
		return out, err
	}
	if err := checkLen(BufferCalibration, len(cal)); err != nil {
		return out, err
	}
	floats.DivTo(out[:], raw[:NumChannels], cal[:NumChannels])
	return out, nil
}
