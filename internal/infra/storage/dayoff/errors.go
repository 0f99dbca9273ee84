package dayoff

import "errors"

var (
	// ErrDayOffNotFound возвращается, когда выходной не найден у владельца
	ErrDayOffNotFound = errors.New("dayoff.repository: day off not found")

	// ErrInvalidRange возвращается, когда дата начала позже даты окончания
	ErrInvalidRange = errors.New("dayoff.repository: start date is after end date")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("dayoff.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("dayoff.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("dayoff.repository: failed to scan row")
)
