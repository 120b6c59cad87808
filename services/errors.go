package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed = errors.New("validation failed")
	ErrGameNotFound     = errors.New("game not found in catalog")
	ErrScheduleNotFound = errors.New("schedule entry not found")
	ErrResultNotFound   = errors.New("result entry not found")

	// Ошибки аутентификации и авторизации
	ErrForbiddenOperation     = errors.New("operation not allowed for the current actor")
	ErrAuthInvalidCredentials = errors.New("invalid email or password")

	// Удалённое хранилище недоступно или запись не зафиксировалась;
	// локальный снимок остаётся прежним, повторов не делается.
	ErrStoreWriteFailed = errors.New("failed to write to event store")

	// Экспорт снимка не настроен (нет учётных данных объектного хранилища)
	ErrExportDisabled = errors.New("snapshot export is not configured")
)
