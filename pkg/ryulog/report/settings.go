package report

// SettingName identifies an emulator setting.
type SettingName string

// Settings surfaced in a report.
const (
	AudioBackend          SettingName = "audio_backend"
	Docked                SettingName = "docked"
	ExpandRAM             SettingName = "expand_ram"
	IgnoreMissingServices SettingName = "ignore_missing_services"
	MemoryManager         SettingName = "memory_manager"
	PPTC                  SettingName = "pptc"
	ShaderCache           SettingName = "shader_cache"
	VSync                 SettingName = "vsync"
	ResolutionScale       SettingName = "resolution_scale"
	AnisotropicFiltering  SettingName = "anisotropic_filtering"
	AspectRatio           SettingName = "aspect_ratio"
)

// Settings holds the display value of each setting.
type Settings struct {
	AudioBackend          string `json:"audio_backend"`
	Docked                string `json:"docked"`
	ExpandRAM             string `json:"expand_ram"`
	IgnoreMissingServices string `json:"ignore_missing_services"`
	MemoryManager         string `json:"memory_manager"`
	PPTC                  string `json:"pptc"`
	ShaderCache           string `json:"shader_cache"`
	VSync                 string `json:"vsync"`
	ResolutionScale       string `json:"resolution_scale"`
	AnisotropicFiltering  string `json:"anisotropic_filtering"`
	AspectRatio           string `json:"aspect_ratio"`
}

// NewSettings returns Settings with every value Unknown.
func NewSettings() Settings {
	return Settings{
		AudioBackend:          Unknown,
		Docked:                Unknown,
		ExpandRAM:             Unknown,
		IgnoreMissingServices: Unknown,
		MemoryManager:         Unknown,
		PPTC:                  Unknown,
		ShaderCache:           Unknown,
		VSync:                 Unknown,
		ResolutionScale:       Unknown,
		AnisotropicFiltering:  Unknown,
		AspectRatio:           Unknown,
	}
}

// Field returns a pointer to the value stored for name, or nil if the
// name is not a known setting.
func (s *Settings) Field(name SettingName) *string {
	switch name {
	case AudioBackend:
		return &s.AudioBackend
	case Docked:
		return &s.Docked
	case ExpandRAM:
		return &s.ExpandRAM
	case IgnoreMissingServices:
		return &s.IgnoreMissingServices
	case MemoryManager:
		return &s.MemoryManager
	case PPTC:
		return &s.PPTC
	case ShaderCache:
		return &s.ShaderCache
	case VSync:
		return &s.VSync
	case ResolutionScale:
		return &s.ResolutionScale
	case AnisotropicFiltering:
		return &s.AnisotropicFiltering
	case AspectRatio:
		return &s.AspectRatio
	}
	return nil
}

// Get returns the value for name, or Unknown for an unrecognized name.
func (s Settings) Get(name SettingName) string {
	if p := s.Field(name); p != nil {
		return *p
	}
	return Unknown
}
