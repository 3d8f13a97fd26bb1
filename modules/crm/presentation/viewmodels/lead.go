package viewmodels

type Lead struct {
	ID             string `json:"id"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Company        string `json:"company"`
	Message        string `json:"message"`
	SourceFormName string `json:"sourceFormName"`
	SubmissionURL  string `json:"submissionUrl"`
	Status         string `json:"status"`
	IPAddress      string `json:"ipAddress"`
	SubmittedAt    string `json:"submittedAt"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

type LeadList struct {
	Leads       []*Lead `json:"leads"`
	TotalCount  int64   `json:"totalCount"`
	CurrentPage int     `json:"currentPage"`
	TotalPages  int     `json:"totalPages"`
}
