package locale

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts[LangEnglish] = map[string]string{
		KeyAppTitle:          "Oblivion Launcher",
		KeyPlay:              "PLAY",
		KeyInstallAndPlay:    "INSTALL AND PLAY",
		KeyNoServerSelected:  "No Server Selected",
		KeyNoAccountSelected: "No Account Selected",
		KeyLoading:           "• Loading..",
		KeySettings:          "Settings",
		KeyOpenInstance:      "Open instance folder",
		KeyRefresh:           "Refresh",
		KeyNews:              "NEWS",
		KeyLanguage:          "Language",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyJavaExecutable:    "Java Executable",
		KeyDataDirectory:     "Data Directory",
		KeyDiscordEnabled:    "Discord integration",
		KeyConsoleOnLaunch:   "Show console on launch",
		KeyServerCodes:       "Server codes (comma separated)",
		KeyMaxRAM:            "Maximum RAM (MB)",
		KeyOkay:              "Okay",
		KeyAccept:            "Accept",
		KeySelectServer:      "Select server",

		KeyPleaseWait:         "Please wait..",
		KeyCheckingSystem:     "Checking system info..",
		KeyPreparingJava:      "Preparing Java download..",
		KeyDownloadingJava:    "Downloading Java..",
		KeyExtracting:         "Extracting",
		KeyJavaInstalled:      "Java installed!",
		KeyLoadingServerInfo:  "Loading server information..",
		KeyLoadingVersionInfo: "Loading version information..",
		KeyValidatingAssets:   "Validating asset integrity..",
		KeyValidatingLibs:     "Validating library integrity..",
		KeyValidatingMisc:     "Validating miscellaneous file integrity..",
		KeyDownloadingFiles:   "Downloading files..",
		KeyExtractingLibs:     "Extracting libraries",
		KeyPreparingLaunch:    "Preparing to launch..",
		KeyLaunchingGame:      "Launching game..",
		KeyReady:              "Done. Enjoy Oblivion!",

		KeyNoJavaTitle:           "No compatible Java installation was found",
		KeyNoJavaDesc:            "To join Oblivion you need a 64-bit Java %d installation. Would you like us to install a copy? By installing you accept the Oracle license terms.",
		KeyInstallJava:           "Install Java",
		KeyInstallManually:       "Install manually",
		KeyJavaRequiredTitle:     "Java is required to launch",
		KeyJavaRequiredDesc:      "A valid Java installation is required to launch. Please contact the staff for instructions.",
		KeyUnderstood:            "I understand",
		KeyGoBack:                "Go back",
		KeyJavaDownloadFailTitle: "Unexpected error: Java download failed",
		KeyJavaDownloadFailDesc:  "An unknown error occurred, please install Java manually.",
		KeyLaunchErrorTitle:      "Error during launch",
		KeyLaunchErrorDesc:       "Check the launcher log for more details.",
		KeyDownloadErrorTitle:    "Download error!",
		KeyDownloadErrorConnDesc: "Could not connect to the Oblivion file servers. Make sure you are on a stable internet connection. If the problem persists use the alternatives on Discord or contact the staff.",
		KeyDownloadErrorDesc:     "Check the launcher log for more details. Contact the staff on Discord if the problem persists.",
		KeyValidationErrorDesc:   "Please check the launcher log for more details.",
		KeyFatalTitle:            "Fatal error",
		KeyFatalDistroDesc:       "Could not load a copy of the distribution index. Please check the launcher log for more details and contact the staff.",
		KeyLaunchWrapperDesc:     "The main file, LaunchWrapper, failed to download. As a result the game cannot launch.\n\nTo fix this, temporarily disable your antivirus software and try again.",
		KeyEarlyCrashTitle:       "Error during launch...",
		KeyEarlyCrashDesc:        "Minecraft crashed before it could open a window or write a crash report. A common cause is running the launcher without administrator rights.\n\nIf you installed custom mods, disable them and try again.\n\nIf the problem persists, send your latest.log to the staff on Discord.",
		KeyOpenLatestLog:         "Open latest.log",
		KeyCrashTitle:            "The game crashed...",
		KeyCrashDesc:             "Your game just crashed and the crash reports folder is now open. Please send the crash report to the staff on Discord.\n\nYour crash report is located at:\n%s",
		KeyCrashAccept:           "Accept",
		KeyOpenCrashReport:       "Open crash report",
		KeyRestrictedTitle:       "Restricted server code!",
		KeyRestrictedDesc:        "It looks like you no longer have access to this server!",
		KeyChangeServer:          "Change server",
		KeyRefreshedTitle:        "Launcher refreshed",
		KeyRefreshedDesc:         "The distribution was refreshed.",
		KeyRefreshFailTitle:      "Error refreshing the distribution",
		KeyRefreshFailDesc:       "The launcher could not fetch the updated Oblivion files and is using a possibly outdated copy.\n\nRestarting the launcher usually fixes this.\n\nError:\n%s",

		KeyPlayers:       "PLAYERS",
		KeyServer:        "SERVER",
		KeyOffline:       "OFFLINE",
		KeyRestarting:    "Restarting",
		KeyNoServers:     "Looks like there are no servers yet...",
		KeyMojangStatus:  "Mojang",
		KeyNetworkStatus: "Network",
		KeyEssential:     "Essential",
		KeyNonEssential:  "Non essential",

		KeyCheckingNews: "Checking for News",
		KeyNoNews:       "No news",
		KeyNewsFailed:   "Failed to load news",
		KeyRetry:        "Retry",
		KeyOf:           "of",
		KeyBy:           "by",

		KeyPresenceWaiting:     "Waiting for client..",
		KeyPresenceDownloading: "Downloading... (%s%%)",
		KeyPresenceLoading:     "Loading server information...",
		KeyPresencePlaying:     "Exploring forgotten lands...",
		KeyPresenceJoined:      "Exploring unknown lands...",
		KeyPresenceReady:       "Ready to play!",
		KeyPresenceMenu:        "In the menu...",
		KeyPresenceSettings:    "In the settings...",
		KeyPresenceNews:        "Reading the news...",
		KeyPresenceState:       "Server: %s",
		KeyPlayedFor:           "Played for %s",
	}

	// Spanish texts
	l.texts[LangSpanish] = map[string]string{
		KeyAppTitle:          "Oblivion Launcher",
		KeyPlay:              "JUGAR",
		KeyInstallAndPlay:    "INSTALAR Y JUGAR",
		KeyNoServerSelected:  "Ningun servidor seleccionado",
		KeyNoAccountSelected: "Ninguna cuenta seleccionada",
		KeyLoading:           "• Cargando..",
		KeySettings:          "Configuracion",
		KeyOpenInstance:      "Abrir carpeta de la instancia",
		KeyRefresh:           "Refrescar",
		KeyNews:              "NOTICIAS",
		KeyLanguage:          "Idioma",
		KeySave:              "Guardar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Buscar",
		KeySettingsSaved:     "Configuracion guardada!",
		KeyJavaExecutable:    "Ejecutable de Java",
		KeyDataDirectory:     "Carpeta de datos",
		KeyDiscordEnabled:    "Integracion con Discord",
		KeyConsoleOnLaunch:   "Mostrar consola al lanzar",
		KeyServerCodes:       "Codigos de servidor (separados por coma)",
		KeyMaxRAM:            "RAM maxima (MB)",
		KeyOkay:              "Okay",
		KeyAccept:            "Aceptar",
		KeySelectServer:      "Elegir servidor",

		KeyPleaseWait:         "Por favor, espera..",
		KeyCheckingSystem:     "Chequeando informacion del sistema..",
		KeyPreparingJava:      "Preparando descarga de Java..",
		KeyDownloadingJava:    "Descargando Java..",
		KeyExtracting:         "Extrayendo",
		KeyJavaInstalled:      "Java instalado!",
		KeyLoadingServerInfo:  "Cargando informacion del servidor..",
		KeyLoadingVersionInfo: "Cargando informacion de version..",
		KeyValidatingAssets:   "Validando integridad de los archivos..",
		KeyValidatingLibs:     "Validando integridad de librerias..",
		KeyValidatingMisc:     "Validando archivos miscelaneos..",
		KeyDownloadingFiles:   "Descargando archivos...",
		KeyExtractingLibs:     "Extrayendo librerias",
		KeyPreparingLaunch:    "Preparando para iniciar..",
		KeyLaunchingGame:      "Lanzando Juego..",
		KeyReady:              "Listo. Suerte en Oblivion!",

		KeyNoJavaTitle:           "No se encontro una instalacion de Java compatible",
		KeyNoJavaDesc:            "Para entrar a Oblivion necesitas una instalacion de 64 bits de Java %d. Queres que te instalemos una copia? Al instalar, aceptas los terminos y condiciones de Oracle.",
		KeyInstallJava:           "Instalar Java",
		KeyInstallManually:       "Instalar manualmente",
		KeyJavaRequiredTitle:     "Java es requerido para abrir el juego",
		KeyJavaRequiredDesc:      "Una instalacion valida de Java es requerida. Contactate con el staff para mas instrucciones.",
		KeyUnderstood:            "Lo entiendo",
		KeyGoBack:                "Volver atras",
		KeyJavaDownloadFailTitle: "Error inesperado: Descarga de Java fallida",
		KeyJavaDownloadFailDesc:  "Hubo un error desconocido, instala Java manualmente!",
		KeyLaunchErrorTitle:      "Error durante el lanzamiento",
		KeyLaunchErrorDesc:       "Chequea el log del launcher para mas detalles.",
		KeyDownloadErrorTitle:    "Error de descarga!",
		KeyDownloadErrorConnDesc: "No se pudo conectar a los servidores de Oblivion. Asegurate que estas usando una conexion de internet estable. Si no se soluciona, utiliza las alternativas en el Discord o contactate con el staff.",
		KeyDownloadErrorDesc:     "Chequea el log del launcher para mas detalles. Contactate en Discord con el staff si el problema persiste!",
		KeyValidationErrorDesc:   "Por favor, chequea el log del launcher para mas detalles.",
		KeyFatalTitle:            "Error fatal",
		KeyFatalDistroDesc:       "No se pudo cargar una copia del distribution index. Por favor, chequea el log del launcher y contactate con un staff.",
		KeyLaunchWrapperDesc:     "El archivo principal, LaunchWrapper, fallo al descargar. Como resultado, el juego no puede abrirse.\n\nPara arreglar esto, apaga temporalmente tu antivirus e intentalo otra vez.",
		KeyEarlyCrashTitle:       "Error durante el lanzamiento...",
		KeyEarlyCrashDesc:        "Parece que tu Minecraft crasheo antes de que pueda abrir el juego o generar un crash report. Una causa comun es no lanzar el launcher como administrador.\n\nSi instalaste algun mod custom, intenta deshabilitarlo y proba otra vez.\n\nSi seguis teniendo este problema, enviale tu latest.log a algun staff en Discord.",
		KeyOpenLatestLog:         "Abrir latest.log",
		KeyCrashTitle:            "El juego crasheo...",
		KeyCrashDesc:             "Parece que tu juego acaba de crashear. Tu carpeta de crash reports ahora esta abierta. Por favor, contactate con el staff en Discord y enviales el crash report!\n\nTu crash report esta ubicado en:\n%s",
		KeyCrashAccept:           "Aceptar",
		KeyOpenCrashReport:       "Abrir crash report",
		KeyRestrictedTitle:       "Codigo del servidor restringido!",
		KeyRestrictedDesc:        "Parece que ya no tenes acceso al servidor!",
		KeyChangeServer:          "Cambiar servidor",
		KeyRefreshedTitle:        "Launcher reiniciado",
		KeyRefreshedDesc:         "Esto es una confirmacion de que tu launcher se reinicio.",
		KeyRefreshFailTitle:      "Error actualizando la distribucion",
		KeyRefreshFailDesc:       "El launcher no fue capaz de conseguir los archivos actualizados de Oblivion y esta usando archivos posiblemente desactualizados.\n\nReiniciar el launcher suele arreglar este problema.\n\nCodigo del error:\n%s",

		KeyPlayers:       "JUGADORES",
		KeyServer:        "SERVIDOR",
		KeyOffline:       "OFFLINE",
		KeyRestarting:    "Reiniciando",
		KeyNoServers:     "Parece que no hay servidores hmmm...",
		KeyMojangStatus:  "Mojang",
		KeyNetworkStatus: "Red",
		KeyEssential:     "Esenciales",
		KeyNonEssential:  "No esenciales",

		KeyCheckingNews: "Buscando noticias",
		KeyNoNews:       "No hay noticias",
		KeyNewsFailed:   "No se pudieron cargar las noticias",
		KeyRetry:        "Reintentar",
		KeyOf:           "de",
		KeyBy:           "por",

		KeyPresenceWaiting:     "Esperando al cliente..",
		KeyPresenceDownloading: "Descargando... (%s%%)",
		KeyPresenceLoading:     "Cargando informacion del servidor...",
		KeyPresencePlaying:     "Explorando tierras olvidadas...",
		KeyPresenceJoined:      "Explorando tierras desconocidas...",
		KeyPresenceReady:       "Listo para jugar!",
		KeyPresenceMenu:        "En el menu...",
		KeyPresenceSettings:    "En la configuracion...",
		KeyPresenceNews:        "Leyendo las noticias...",
		KeyPresenceState:       "Servidor: %s",
		KeyPlayedFor:           "Jugaste %s",
	}
}
