// Пакет model — доменные модели файлового реестра.
package model

import "time"

// Типы хранения файла.
const (
	// StorageDirect — бинарное содержимое хранится в самой записи (file_data).
	StorageDirect = "direct"
	// StorageLink — запись ссылается на внешний ресурс по URL (file_url).
	StorageLink = "link"
)

// MaxDirectFileSize — потолок размера файла для прямого хранения (5 MiB).
// Файлы больше — только по внешней ссылке.
const MaxDirectFileSize = 5 * 1024 * 1024

// Categories — фиксированный набор категорий реестра.
// Контракт обеспечивается вызывающей стороной, а не схемой БД.
var Categories = []string{
	"01_Archive_Audio",
	"02_Images",
	"03_Scripts_&_Text",
	"04_Grants_Compliance",
	"05_Fundraising",
	"06_Finance",
	"07_Analytics",
	"08_Templates",
	"09_Social_Media",
	"10_Website_Backup",
	"99_Obsolete",
}

// FileRecord — запись файла в реестре.
// Хранится в таблице files.
//
// Инвариант: ровно одно из полей FileData/FileURL значимо,
// какое именно — определяет StorageType.
type FileRecord struct {
	// ID — уникальный целочисленный идентификатор (BIGSERIAL)
	ID int64
	// Filename — производное имя для хранения (с префиксом уникальности)
	Filename string
	// OriginalName — пользовательское имя файла
	OriginalName string
	// Category — категория из фиксированного набора
	Category string
	// FileType — MIME-тип; application/octet-stream для ссылок и неизвестных
	FileType string
	// FileSize — размер в байтах; 0 для ссылок
	FileSize int64
	// StorageType — direct или link
	StorageType string
	// FileData — бинарное содержимое (только для direct)
	FileData []byte
	// FileURL — внешний URL (только для link)
	FileURL *string
	// Description — описание (опционально)
	Description *string
	// CreatedAt — время создания записи, неизменяемо
	CreatedAt time.Time
	// UpdatedAt — время последнего обновления; зарезервировано,
	// операций мутации кроме удаления нет
	UpdatedAt time.Time
}
