package config

// Config holds docsieve configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Heading  HeadingConfig       `mapstructure:"heading" yaml:"heading"`
	Ranking  RankingConfig       `mapstructure:"ranking" yaml:"ranking"`
	Personas map[string][]string `mapstructure:"personas" yaml:"personas"`
	Pipeline PipelineConfig      `mapstructure:"pipeline" yaml:"pipeline"`
}

// HeadingConfig holds the heading classifier's tuning knobs. These are the
// heuristic constants the whole outline stage turns on; tests probe band
// boundaries through this struct rather than scattered literals.
type HeadingConfig struct {
	// SizeRatioGain scales (ratio - 1.0) into a confidence contribution.
	SizeRatioGain float64 `mapstructure:"size_ratio_gain" yaml:"size_ratio_gain"`
	// SizeRatioCap bounds the font-size contribution.
	SizeRatioCap float64 `mapstructure:"size_ratio_cap" yaml:"size_ratio_cap"`
	// BoldBonus is added when the run is bold.
	BoldBonus float64 `mapstructure:"bold_bonus" yaml:"bold_bonus"`
	// PatternBonus is added when the run matches a heading text pattern.
	PatternBonus float64 `mapstructure:"pattern_bonus" yaml:"pattern_bonus"`
	// LengthBonus is added when the run length is in [MinLength, MaxLength].
	LengthBonus float64 `mapstructure:"length_bonus" yaml:"length_bonus"`
	// PositionBonus is added when the run sits in the top TopFraction of
	// its page.
	PositionBonus float64 `mapstructure:"position_bonus" yaml:"position_bonus"`

	MinLength   int     `mapstructure:"min_length" yaml:"min_length"`
	MaxLength   int     `mapstructure:"max_length" yaml:"max_length"`
	TopFraction float64 `mapstructure:"top_fraction" yaml:"top_fraction"`

	// Confidence bands. AcceptFloor <= c < H2Threshold is H3,
	// H2Threshold <= c < H1Threshold is H2, c >= H1Threshold is H1.
	// Below AcceptFloor the run is not a heading.
	H1Threshold float64 `mapstructure:"h1_threshold" yaml:"h1_threshold"`
	H2Threshold float64 `mapstructure:"h2_threshold" yaml:"h2_threshold"`
	AcceptFloor float64 `mapstructure:"accept_floor" yaml:"accept_floor"`
}

// RankingConfig holds the relevance scorer and collection ranker knobs.
type RankingConfig struct {
	// Importance weights. Must sum to 1.0 so importance stays in [0,1].
	PersonaWeight float64 `mapstructure:"persona_weight" yaml:"persona_weight"`
	TaskWeight    float64 `mapstructure:"task_weight" yaml:"task_weight"`
	LengthWeight  float64 `mapstructure:"length_weight" yaml:"length_weight"`
	HeadingWeight float64 `mapstructure:"heading_weight" yaml:"heading_weight"`

	// LengthCap is the text length (in characters) at which the length
	// score saturates.
	LengthCap int `mapstructure:"length_cap" yaml:"length_cap"`

	// TopSections is how many ranked sections land in extracted_sections.
	TopSections int `mapstructure:"top_sections" yaml:"top_sections"`
	// TopSubsections is how many refined excerpts land in
	// subsection_analysis.
	TopSubsections int `mapstructure:"top_subsections" yaml:"top_subsections"`
	// RefinedTextLimit is the character budget for refined excerpts.
	RefinedTextLimit int `mapstructure:"refined_text_limit" yaml:"refined_text_limit"`
}

// PipelineConfig controls the per-collection document fan-out.
type PipelineConfig struct {
	// MaxWorkers caps concurrent per-document pipelines. 0 means
	// runtime.NumCPU().
	MaxWorkers int `mapstructure:"max_workers" yaml:"max_workers"`
}

// DefaultConfig returns configuration with the documented default constants.
// The numeric values are heuristic tuning defaults, not trained parameters.
func DefaultConfig() *Config {
	return &Config{
		Heading: HeadingConfig{
			SizeRatioGain: 0.5,
			SizeRatioCap:  0.3,
			BoldBonus:     0.3,
			PatternBonus:  0.2,
			LengthBonus:   0.1,
			PositionBonus: 0.1,
			MinLength:     3,
			MaxLength:     80,
			TopFraction:   0.3,
			H1Threshold:   0.7,
			H2Threshold:   0.5,
			AcceptFloor:   0.3,
		},
		Ranking: RankingConfig{
			PersonaWeight:    0.40,
			TaskWeight:       0.30,
			LengthWeight:     0.20,
			HeadingWeight:    0.10,
			LengthCap:        1000,
			TopSections:      10,
			TopSubsections:   15,
			RefinedTextLimit: 2000,
		},
		Personas: DefaultPersonas(),
		Pipeline: PipelineConfig{
			MaxWorkers: 0,
		},
	}
}

// DefaultPersonas returns the built-in persona keyword table. Adding a
// persona is a config change, not a code change: the scorer only ever sees
// this table.
func DefaultPersonas() map[string][]string {
	return map[string][]string{
		"Travel Planner": {
			"travel", "trip", "vacation", "hotel", "restaurant", "attraction",
			"itinerary", "booking", "reservation", "transport", "accommodation",
			"sightseeing", "tour", "guide", "map", "location", "city", "region",
			"culture", "cuisine", "activities", "entertainment", "budget", "cost",
			"france", "south", "mediterranean", "coast", "beach", "wine", "food",
		},
		"HR Professional": {
			"form", "document", "signature", "compliance", "onboarding",
			"employee", "hr", "human resources", "policy", "procedure",
			"fillable", "editable", "template", "workflow", "approval",
			"digital", "electronic", "automation", "process", "management",
			"acrobat", "pdf", "fill", "sign", "export", "share", "edit",
		},
		"Food Contractor": {
			"recipe", "cooking", "food", "ingredient", "meal", "dish",
			"vegetarian", "buffet", "catering", "menu", "preparation",
			"kitchen", "chef", "culinary", "dining", "service", "corporate",
			"event", "gathering", "party", "celebration", "dietary", "nutrition",
			"breakfast", "lunch", "dinner", "main", "side", "appetizer",
		},
	}
}
