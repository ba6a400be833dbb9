package escl

// SettingProfile defines a valid combination of scanning parameters.
//
// eSCL Technical Specification, 8.1.2.
type SettingProfile struct {
	ColorModes           ColorModes           // Supported color modes
	DocumentFormats      []string             // MIME types of supported formats
	SupportedResolutions SupportedResolutions // Supported resolutions
}
