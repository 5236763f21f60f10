package transfer

type InstagramContainerResponse struct {
	ID string `json:"id"`
}

type InstagramContainerStatus struct {
	StatusCode string `json:"status_code"` // IN_PROGRESS, FINISHED, ERROR, EXPIRED
	ID         string `json:"id"`
}

type InstagramPublishResponse struct {
	ID string `json:"id"`
}
