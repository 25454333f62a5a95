package locale

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyPlay              = "play"
	KeyInstallAndPlay    = "install_and_play"
	KeyNoServerSelected  = "no_server_selected"
	KeyNoAccountSelected = "no_account_selected"
	KeyLoading           = "loading"
	KeySettings          = "settings"
	KeyOpenInstance      = "open_instance"
	KeyRefresh           = "refresh"
	KeyNews              = "news"
	KeyLanguage          = "language"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeyJavaExecutable    = "java_executable"
	KeyDataDirectory     = "data_directory"
	KeyDiscordEnabled    = "discord_enabled"
	KeyConsoleOnLaunch   = "console_on_launch"
	KeyServerCodes       = "server_codes"
	KeyMaxRAM            = "max_ram"
	KeyOkay              = "okay"
	KeyAccept            = "accept"
	KeySelectServer      = "select_server"

	// Launch details
	KeyPleaseWait         = "please_wait"
	KeyCheckingSystem     = "checking_system"
	KeyPreparingJava      = "preparing_java"
	KeyDownloadingJava    = "downloading_java"
	KeyExtracting         = "extracting"
	KeyJavaInstalled      = "java_installed"
	KeyLoadingServerInfo  = "loading_server_info"
	KeyLoadingVersionInfo = "loading_version_info"
	KeyValidatingAssets   = "validating_assets"
	KeyValidatingLibs     = "validating_libraries"
	KeyValidatingMisc     = "validating_misc"
	KeyDownloadingFiles   = "downloading_files"
	KeyExtractingLibs     = "extracting_libraries"
	KeyPreparingLaunch    = "preparing_launch"
	KeyLaunchingGame      = "launching_game"
	KeyReady              = "ready"

	// Overlays
	KeyNoJavaTitle           = "no_java_title"
	KeyNoJavaDesc            = "no_java_desc"
	KeyInstallJava           = "install_java"
	KeyInstallManually       = "install_manually"
	KeyJavaRequiredTitle     = "java_required_title"
	KeyJavaRequiredDesc      = "java_required_desc"
	KeyUnderstood            = "understood"
	KeyGoBack                = "go_back"
	KeyJavaDownloadFailTitle = "java_download_fail_title"
	KeyJavaDownloadFailDesc  = "java_download_fail_desc"
	KeyLaunchErrorTitle      = "launch_error_title"
	KeyLaunchErrorDesc       = "launch_error_desc"
	KeyDownloadErrorTitle    = "download_error_title"
	KeyDownloadErrorConnDesc = "download_error_conn_desc"
	KeyDownloadErrorDesc     = "download_error_desc"
	KeyValidationErrorDesc   = "validation_error_desc"
	KeyFatalTitle            = "fatal_title"
	KeyFatalDistroDesc       = "fatal_distro_desc"
	KeyLaunchWrapperDesc     = "launchwrapper_desc"
	KeyEarlyCrashTitle       = "early_crash_title"
	KeyEarlyCrashDesc        = "early_crash_desc"
	KeyOpenLatestLog         = "open_latest_log"
	KeyCrashTitle            = "crash_title"
	KeyCrashDesc             = "crash_desc"
	KeyCrashAccept           = "crash_accept"
	KeyOpenCrashReport       = "open_crash_report"
	KeyRestrictedTitle       = "restricted_title"
	KeyRestrictedDesc        = "restricted_desc"
	KeyChangeServer          = "change_server"
	KeyRefreshedTitle        = "refreshed_title"
	KeyRefreshedDesc         = "refreshed_desc"
	KeyRefreshFailTitle      = "refresh_fail_title"
	KeyRefreshFailDesc       = "refresh_fail_desc"

	// Status
	KeyPlayers       = "players"
	KeyServer        = "server"
	KeyOffline       = "offline"
	KeyRestarting    = "restarting"
	KeyNoServers     = "no_servers"
	KeyMojangStatus  = "mojang_status"
	KeyNetworkStatus = "network_status"
	KeyEssential     = "essential"
	KeyNonEssential  = "non_essential"

	// News
	KeyCheckingNews = "checking_news"
	KeyNoNews       = "no_news"
	KeyNewsFailed   = "news_failed"
	KeyRetry        = "retry"
	KeyOf           = "of"
	KeyBy           = "by"

	// Presence
	KeyPresenceWaiting     = "presence_waiting"
	KeyPresenceDownloading = "presence_downloading"
	KeyPresenceLoading     = "presence_loading"
	KeyPresencePlaying     = "presence_playing"
	KeyPresenceJoined      = "presence_joined"
	KeyPresenceReady       = "presence_ready"
	KeyPresenceMenu        = "presence_menu"
	KeyPresenceSettings    = "presence_settings"
	KeyPresenceNews        = "presence_news"
	KeyPresenceState       = "presence_state"
	KeyPlayedFor           = "played_for"
)
