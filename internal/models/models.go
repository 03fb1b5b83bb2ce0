package models

// CatalogStats - агрегаты по каталогу
type CatalogStats struct {
	Shows     int `json:"shows"`
	Cities    int `json:"cities"`
	Countries int `json:"countries"`
	Regions   int `json:"regions"`
}

// ListCatalogResponse - каталог, сгруппированный по регионам
type ListCatalogResponse struct {
	Regions []RegionResponse `json:"regions"`
}

// RegionResponse - регион с признаками доступности
type RegionResponse struct {
	Name      string            `json:"name"`
	Emoji     string            `json:"emoji"`
	Countries []CountryResponse `json:"countries"`
}

// CountryResponse - страна с признаком "всё распродано"
type CountryResponse struct {
	Name       string         `json:"name"`
	Flag       string         `json:"flag"`
	AllSoldOut bool           `json:"all_sold_out"`
	Shows      []ShowResponse `json:"shows"`
}

// ShowResponse - шоу с флагами покупки
type ShowResponse struct {
	Show
	Purchasable bool `json:"purchasable"`
	LowStock    bool `json:"low_stock"`
}

// SearchShowsResponse - результат полнотекстового поиска шоу
type SearchShowsResponse struct {
	Shows []ShowDocument `json:"shows"`
	Total int64          `json:"total"`
}

// ShowDocument - шоу вместе с регионом и страной, как оно хранится в поисковом индексе
type ShowDocument struct {
	Show
	Region  string `json:"region"`
	Country string `json:"country"`
}

// StartCheckoutRequest - модель для начала оформления заказа
type StartCheckoutRequest struct {
	ShowID string `json:"show_id" binding:"required"`
}

// SelectTierRequest - модель для выбора категории билета
type SelectTierRequest struct {
	Tier string `json:"tier" binding:"required"`
}

// ChangeQuantityRequest - модель для изменения количества билетов.
// Либо Delta (+1/-1), либо абсолютное значение Quantity.
type ChangeQuantityRequest struct {
	Delta    *int `json:"delta,omitempty"`
	Quantity *int `json:"quantity,omitempty"`
}

// BuyerInfoRequest - контактные данные покупателя
type BuyerInfoRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PaymentSentRequest - покупатель сообщает, что отправил платеж
type PaymentSentRequest struct {
	TxHash string `json:"tx_hash,omitempty"`
}
