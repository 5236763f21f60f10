package transfer

type CaptionRequest struct {
	CompanyID   int64  `json:"company_id"`
	CompanyName string `json:"company_name"`
	Trade       string `json:"trade"`
	ContentKind string `json:"content_kind"`
	ContentID   int64  `json:"content_id"`
}

type CaptionResult struct {
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
}

type GraphicRequest struct {
	CompanyID    int64  `json:"company_id"`
	CompanyName  string `json:"company_name"`
	Trade        string `json:"trade"`
	ReviewerName string `json:"reviewer_name"`
	Rating       int    `json:"rating"`
	Text         string `json:"text"`
}
