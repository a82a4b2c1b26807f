// Package constants содержит константы, общие для пакетов taskdispatch.
package constants

// Имя и версия приложения.
const (
	// AppName: имя приложения, используется в логах, метриках и трейсах.
	AppName = "taskdispatch"

	// EnvPrefix: префикс переменных окружения.
	EnvPrefix = "TD_"

	// ConfigPathEnv: переменная окружения с путём к YAML конфигурации.
	ConfigPathEnv = "TD_CONFIG"
)

// Version: версия сборки. Переопределяется через -ldflags "-X ...constants.Version=...".
var Version = "dev"

// Константы сообщений приложения.
const (
	// MsgAppExit: сообщение о завершении работы программы.
	MsgAppExit = "Завершение работы программы"
	// MsgErrProcessing: сообщение об обработке ошибки.
	MsgErrProcessing = "Обработка ошибки"
)

// CommandRun: имя команды запуска синтетической нагрузки.
const CommandRun = "run"

// Коды завершения процесса.
const (
	ExitOK           = 0
	ExitConfigError  = 5
	ExitRuntimeError = 8
)
