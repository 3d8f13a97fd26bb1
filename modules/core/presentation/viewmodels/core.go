package viewmodels

type Setting struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updatedAt"`
}

type SettingKeys struct {
	Keys []string `json:"keys"`
}

type Upload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Hash      string `json:"hash"`
	Size      int64  `json:"size"`
	Mimetype  string `json:"mimetype"`
	CreatedAt string `json:"createdAt"`
}

type UploadList struct {
	Items       []*Upload `json:"items"`
	TotalCount  int64     `json:"totalCount"`
	CurrentPage int       `json:"currentPage"`
	TotalPages  int       `json:"totalPages"`
}
