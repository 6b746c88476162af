package tui

import (
	"github.com/charmbracelet/huh"
)

func CreateScanForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("extension").
				Title("Archive Extension").
				Description("Only files ending with this extension are scanned").
				Value(&values.Extension).
				Placeholder(".npz").
				Validate(ValidateExtension),

			huh.NewText().
				Key("exclude_suffixes").
				Title("Excluded Suffixes").
				Description("One per line; files ending with any of these are skipped").
				Value(&values.ExcludeSuffixes).
				Placeholder("stagei.npz\nshape.npz"),

			huh.NewConfirm().
				Key("sort").
				Title("Sort Candidates").
				Description("Order files by path so idx values are reproducible").
				Value(&values.Sort),
		),
	).WithTheme(GetTheme())
}

func CreateExtractForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Key("frame_rate_keys").
				Title("Frame Rate Fields").
				Description("Checked in order; the first one present wins").
				Value(&values.FrameRateKeys).
				Placeholder("mocap_framerate\nmocap_frame_rate").
				Validate(ValidateFieldNames),

			huh.NewInput().
				Key("poses_key").
				Title("Poses Field").
				Description("Array whose first axis is the frame count").
				Value(&values.PosesKey).
				Placeholder("poses").
				Validate(ValidateFieldName),
		),
	).WithTheme(GetTheme())
}

func CreateManifestForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("identifier_extension").
				Title("Identifier Extension").
				Description("Replaces the archive extension in each entry's file").
				Value(&values.IdentifierExtension).
				Placeholder(".motion").
				Validate(ValidateExtension),

			huh.NewConfirm().
				Key("strict_identifiers").
				Title("Strict Identifiers").
				Description("Fail the build when two files normalize to the same identifier").
				Value(&values.StrictIdentifiers),
		),
	).WithTheme(GetTheme())
}

func CreateOutputForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("file").
				Title("Manifest File").
				Description("Used when --output_file is not given (.json writes JSON)").
				Value(&values.OutputFile).
				Placeholder("./motions.yaml"),

			huh.NewInput().
				Key("report").
				Title("Run Report").
				Description("Optional JSON report of skipped files (leave empty to disable)").
				Value(&values.OutputReport),

			huh.NewConfirm().
				Key("progress").
				Title("Progress Bar").
				Description("Show a progress bar when stderr is a terminal").
				Value(&values.OutputProgress),
		),
	).WithTheme(GetTheme())
}

func CreateCacheForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("enabled").
				Title("Enable Cache").
				Description("Reuse extracted metadata for unchanged archives").
				Value(&values.CacheEnabled),

			huh.NewInput().
				Key("ttl").
				Title("Cache TTL").
				Description("How long to keep cached metadata (e.g., 24h, 168h)").
				Value(&values.CacheTTL).
				Placeholder("168h").
				Validate(ValidateDuration),

			huh.NewInput().
				Key("directory").
				Title("Cache Directory").
				Description("Directory for cache storage").
				Value(&values.CacheDirectory).
				Placeholder("~/.motionscan/cache"),
		),
	).WithTheme(GetTheme())
}

func CreateLoggingForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("level").
				Title("Log Level").
				Description("Minimum log level to display").
				Options(
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Error", "error"),
				).
				Value(&values.LogLevel),

			huh.NewSelect[string]().
				Key("format").
				Title("Log Format").
				Description("Output format for logs").
				Options(
					huh.NewOption("Pretty (human-readable)", "pretty"),
					huh.NewOption("JSON (structured)", "json"),
				).
				Value(&values.LogFormat),
		),
	).WithTheme(GetTheme())
}

func GetFormForCategory(category string, values *ConfigValues) *huh.Form {
	switch category {
	case "scan":
		return CreateScanForm(values)
	case "extract":
		return CreateExtractForm(values)
	case "manifest":
		return CreateManifestForm(values)
	case "output":
		return CreateOutputForm(values)
	case "cache":
		return CreateCacheForm(values)
	case "logging":
		return CreateLoggingForm(values)
	default:
		return nil
	}
}
