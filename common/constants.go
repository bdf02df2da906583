package common

const (
	// Gravity is the default downward acceleration in physics units per second squared.
	Gravity = 900.0

	// StepDT is the fixed simulation step in seconds.
	StepDT = 1.0 / 60.0

	ViewportWidth  = 1280
	ViewportHeight = 720
)
