package config

import (
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"github.com/farfania/oblivion-launcher/internal/jsonx"
	"github.com/farfania/oblivion-launcher/internal/model"
	"github.com/farfania/oblivion-launcher/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeySelectedServer     = "selected_server"
	KeySelectedAccount    = "selected_account"
	KeyJavaExecutable     = "java_executable"
	KeyDataDir            = "data_directory"
	KeyServerCodes        = "server_codes"
	KeyNewsCache          = "news_cache"
	KeyDiscordIntegration = "discord_integration"
	KeyConsoleOnLaunch    = "console_on_launch"
	KeyLanguage           = "app_language"
	KeyMaxRAM             = "max_ram_mb"
)

// Default values
const (
	DefaultDiscordIntegration = true
	DefaultConsoleOnLaunch    = false
	DefaultLanguage           = "system"
	DefaultMaxRAM             = 4096
	MinMaxRAM                 = 1024
	MaxMaxRAM                 = 32768
)

// Directory names below the data directory
const (
	CommonDirName    = "common"
	InstancesDirName = "instances"
)

// Settings manages user configuration persisted in Fyne preferences
type Settings struct {
	app         fyne.App
	launcherDir string
}

// NewSettings creates a new settings manager. launcherDir is where launcher
// owned files (distribution cache, launcher.toml) are kept.
func NewSettings(app fyne.App, launcherDir string) *Settings {
	return &Settings{app: app, launcherDir: launcherDir}
}

// GetLauncherDirectory returns the launcher directory
func (s *Settings) GetLauncherDirectory() string {
	return s.launcherDir
}

// GetDataDirectory returns the configured data directory
func (s *Settings) GetDataDirectory() string {
	dir := s.app.Preferences().String(KeyDataDir)
	if dir == "" {
		defaultDir, err := platform.DefaultDataDir()
		if err != nil {
			defaultDir = filepath.Join(s.launcherDir, "data")
		}
		s.SetDataDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDataDirectory sets the data directory
func (s *Settings) SetDataDirectory(dir string) {
	s.app.Preferences().SetString(KeyDataDir, dir)
}

// GetCommonDirectory returns the directory shared libraries and assets live in
func (s *Settings) GetCommonDirectory() string {
	return filepath.Join(s.GetDataDirectory(), CommonDirName)
}

// GetInstanceDirectory returns the directory holding per-server game instances
func (s *Settings) GetInstanceDirectory() string {
	return filepath.Join(s.GetDataDirectory(), InstancesDirName)
}

// GetSelectedServer returns the selected server ID, empty if none
func (s *Settings) GetSelectedServer() string {
	return s.app.Preferences().String(KeySelectedServer)
}

// SetSelectedServer sets the selected server ID
func (s *Settings) SetSelectedServer(id string) {
	s.app.Preferences().SetString(KeySelectedServer, id)
}

// GetSelectedAccount returns the selected account or nil
func (s *Settings) GetSelectedAccount() *model.Account {
	raw := s.app.Preferences().String(KeySelectedAccount)
	if raw == "" {
		return nil
	}
	var account model.Account
	if err := jsonx.Unmarshal([]byte(raw), &account); err != nil {
		return nil
	}
	return &account
}

// SetSelectedAccount stores the selected account, nil clears it
func (s *Settings) SetSelectedAccount(account *model.Account) {
	if account == nil {
		s.app.Preferences().RemoveValue(KeySelectedAccount)
		return
	}
	data, err := jsonx.Marshal(account)
	if err != nil {
		return
	}
	s.app.Preferences().SetString(KeySelectedAccount, string(data))
}

// GetJavaExecutable returns the configured Java executable, empty if unset
func (s *Settings) GetJavaExecutable() string {
	return s.app.Preferences().String(KeyJavaExecutable)
}

// SetJavaExecutable sets the Java executable
func (s *Settings) SetJavaExecutable(path string) {
	s.app.Preferences().SetString(KeyJavaExecutable, strings.TrimSpace(path))
}

// GetServerCodes returns the server codes the user has entered
func (s *Settings) GetServerCodes() []string {
	return s.app.Preferences().StringList(KeyServerCodes)
}

// SetServerCodes stores the server codes, dropping blanks and duplicates
func (s *Settings) SetServerCodes(codes []string) {
	seen := make(map[string]bool, len(codes))
	clean := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		clean = append(clean, c)
	}
	s.app.Preferences().SetStringList(KeyServerCodes, clean)
}

// HasServerCode reports whether code was entered by the user
func (s *Settings) HasServerCode(code string) bool {
	for _, c := range s.GetServerCodes() {
		if c == code {
			return true
		}
	}
	return false
}

// GetNewsCache returns the persisted news cache. A missing or corrupt
// record reads as empty.
func (s *Settings) GetNewsCache() model.NewsCache {
	var cache model.NewsCache
	raw := s.app.Preferences().String(KeyNewsCache)
	if raw == "" {
		return cache
	}
	if err := jsonx.Unmarshal([]byte(raw), &cache); err != nil {
		return model.NewsCache{}
	}
	return cache
}

// SetNewsCache persists the news cache
func (s *Settings) SetNewsCache(cache model.NewsCache) {
	data, err := jsonx.Marshal(cache)
	if err != nil {
		return
	}
	s.app.Preferences().SetString(KeyNewsCache, string(data))
}

// SetNewsCacheDismissed updates only the dismissed flag of the news cache
func (s *Settings) SetNewsCacheDismissed(dismissed bool) {
	cache := s.GetNewsCache()
	cache.Dismissed = dismissed
	s.SetNewsCache(cache)
}

// GetDiscordIntegration returns whether presence updates are enabled
func (s *Settings) GetDiscordIntegration() bool {
	return s.app.Preferences().BoolWithFallback(KeyDiscordIntegration, DefaultDiscordIntegration)
}

// SetDiscordIntegration enables or disables presence updates
func (s *Settings) SetDiscordIntegration(enabled bool) {
	s.app.Preferences().SetBool(KeyDiscordIntegration, enabled)
}

// GetConsoleOnLaunch returns whether the log console opens on launch
func (s *Settings) GetConsoleOnLaunch() bool {
	return s.app.Preferences().BoolWithFallback(KeyConsoleOnLaunch, DefaultConsoleOnLaunch)
}

// SetConsoleOnLaunch sets whether the log console opens on launch
func (s *Settings) SetConsoleOnLaunch(enabled bool) {
	s.app.Preferences().SetBool(KeyConsoleOnLaunch, enabled)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetMaxRAM returns the maximum heap for the game in megabytes
func (s *Settings) GetMaxRAM() int {
	value := s.app.Preferences().Int(KeyMaxRAM)
	if value <= 0 {
		s.SetMaxRAM(DefaultMaxRAM)
		return DefaultMaxRAM
	}
	return value
}

// SetMaxRAM sets the maximum heap for the game in megabytes
func (s *Settings) SetMaxRAM(mb int) {
	if mb < MinMaxRAM {
		mb = MinMaxRAM
	}
	if mb > MaxMaxRAM {
		mb = MaxMaxRAM
	}
	s.app.Preferences().SetInt(KeyMaxRAM, mb)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"es":     "Español",
	}
}
