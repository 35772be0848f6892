package config

const (
	defaultStateDir         = "~/.local/share/speciesmap"
	defaultOutputDir        = "~/Downloads"
	defaultLogDir           = "~/.local/share/speciesmap/logs"
	defaultLogRetentionDays = 30
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultAreaNameProperty = "NAME"
	defaultRegionLabel      = "MT"
	defaultPageSize         = 15
	defaultGridColumns      = 3
	defaultGridRows         = 5
	defaultDPI              = 300
	defaultPageWidthInches  = 13.2
	defaultPageHeightInches = 19
	defaultNeutralColor     = "white"
	defaultOutlineColor     = "black"
	defaultFillOpacity      = 0.6
	defaultColor            = "red"
	defaultPreColor         = "green"
	defaultPostColor        = "red"
	defaultTimestampLayout  = "20060102_1504"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir:  defaultStateDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Areas: Areas{
			NameProperty: defaultAreaNameProperty,
			RegionLabel:  defaultRegionLabel,
		},
		Gallery: Gallery{
			PageSize: defaultPageSize,
			Columns:  defaultGridColumns,
			Rows:     defaultGridRows,
		},
		Render: Render{
			DPI:              defaultDPI,
			PageWidthInches:  defaultPageWidthInches,
			PageHeightInches: defaultPageHeightInches,
			NeutralColor:     defaultNeutralColor,
			OutlineColor:     defaultOutlineColor,
			FillOpacity:      defaultFillOpacity,
		},
		Colors: Colors{
			Default:   defaultColor,
			PreColor:  defaultPreColor,
			PostColor: defaultPostColor,
		},
		Export: Export{
			TimestampLayout: defaultTimestampLayout,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
