package physics

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ContinuousMode selects which bodies get conservative-advancement CCD
// (§4.3): none, flagged "bullet" bodies only, or every dynamic body.
type ContinuousMode int

const (
	ContinuousNone ContinuousMode = iota
	ContinuousBullets
	ContinuousAll
)

// Settings holds every tunable constant named in spec §6. All fields have
// the defaults listed in §5's "Numerical tolerances" paragraph. A World
// embeds one Settings value; there is no process-wide/global settings
// singleton (Design Notes §9).
type Settings struct {
	StepFrequency  float64 `yaml:"step_frequency"`
	MaxVelocity        float64 `yaml:"max_velocity"`
	MaxAngularVelocity float64 `yaml:"max_angular_velocity"`

	SleepEnabled          bool    `yaml:"sleep_enabled"`
	SleepLinearThreshold  float64 `yaml:"sleep_linear_threshold"`
	SleepAngularThreshold float64 `yaml:"sleep_angular_threshold"`
	TimeToSleep           float64 `yaml:"time_to_sleep"`

	VelocityIterations int `yaml:"velocity_iterations"`
	PositionIterations int `yaml:"position_iterations"`

	WarmStartDistance  float64 `yaml:"warm_start_distance"`
	RestitutionVelocity float64 `yaml:"restitution_velocity"`

	LinearTolerance      float64 `yaml:"linear_tolerance"`
	MaxLinearCorrection  float64 `yaml:"max_linear_correction"`
	Baumgarte            float64 `yaml:"baumgarte"`

	AABBExpansion float64 `yaml:"aabb_expansion"`

	CCDTolerance    float64 `yaml:"ccd_tolerance"`
	CCDMaxIterations int    `yaml:"ccd_max_iterations"`

	ContinuousDetectionMode ContinuousMode `yaml:"continuous_detection_mode"`
}

// DefaultSettings returns the numerical tolerances spec §5 names as design
// constants, mirroring the defaults gazed-vu/physics/solver.go's
// newSolverInfo hard-codes for its own PGS solver (numIterations=10,
// erp=0.2 there is this Baumgarte's direct analogue).
func DefaultSettings() Settings {
	return Settings{
		StepFrequency:      1.0 / 60.0,
		MaxVelocity:        200.0,
		MaxAngularVelocity: 4.36,

		SleepEnabled:          true,
		SleepLinearThreshold:  0.01,
		SleepAngularThreshold: 0.035,
		TimeToSleep:           0.5,

		VelocityIterations: 10,
		PositionIterations: 10,

		WarmStartDistance:   1e-2,
		RestitutionVelocity: 1.0,

		LinearTolerance:     0.005,
		MaxLinearCorrection: 0.2,
		Baumgarte:           0.2,

		AABBExpansion: 0.2,

		CCDTolerance:     1e-3,
		CCDMaxIterations: 30,

		ContinuousDetectionMode: ContinuousBullets,
	}
}

// warmStartDistanceSquared is cached squared so the contact manager's
// proximity match never needs a sqrt (spec §4.4, §5).
func (s Settings) warmStartDistanceSquared() float64 {
	return s.WarmStartDistance * s.WarmStartDistance
}

// clampIterations raises each iteration count to at least 1 rather than
// rejecting it — spec §7 says "a bad configuration value clamps to its
// permitted range or rejects at the boundary"; for iteration counts
// clamping keeps the solver always runnable. Counts below the practical
// minimums (5 position, 8 velocity) are kept as set.
func (s *Settings) clampIterations() {
	if s.VelocityIterations < 1 {
		s.VelocityIterations = 1
	}
	if s.PositionIterations < 1 {
		s.PositionIterations = 1
	}
}

// LoadSettingsYAML reads a Settings value from a YAML file at path. Unset
// fields keep DefaultSettings' values — the file is unmarshaled on top of
// a default-initialized Settings.
func LoadSettingsYAML(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, err
	}
	s.clampIterations()
	return s, nil
}

// SaveSettingsYAML writes s to path in YAML form.
func SaveSettingsYAML(s Settings, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
