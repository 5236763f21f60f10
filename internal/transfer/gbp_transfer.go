package transfer

type GBPMediaItem struct {
	MediaFormat string `json:"mediaFormat"`
	SourceURL   string `json:"sourceUrl"`
}

type GBPLocalPostRequest struct {
	LanguageCode string         `json:"languageCode"`
	Summary      string         `json:"summary"`
	TopicType    string         `json:"topicType"`
	Media        []GBPMediaItem `json:"media,omitempty"`
}

type GBPLocalPostResponse struct {
	Name  string `json:"name"`
	State string `json:"state"`
}
