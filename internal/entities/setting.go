package entities

type Setting struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Value string `gorm:"type:text;not null" json:"value"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting names
const (
	SettingNameLanguage   = "language"
	SettingNameGridTheme  = "grid_theme"
	SettingNameExportPath = "export_path"
)
