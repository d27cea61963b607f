package domain

// ProviderIdentity описывает провайдера карт для регистрации и поиска
type ProviderIdentity struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// MapParams - параметры рендеринга карты
type MapParams struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Zoom     int    `json:"zoom"`
	Style    string `json:"style,omitempty"`
	User     string `json:"user,omitempty"`
	Location string `json:"location,omitempty"`
}

// StyleCatalog - соответствие идентификатора стиля его отображаемому имени
type StyleCatalog map[string]string

// Clone возвращает независимую копию каталога
func (c StyleCatalog) Clone() StyleCatalog {
	out := make(StyleCatalog, len(c))
	for id, name := range c {
		out[id] = name
	}
	return out
}

// Has сообщает, есть ли стиль в каталоге
func (c StyleCatalog) Has(id string) bool {
	_, ok := c[id]
	return ok
}
