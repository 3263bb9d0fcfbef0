package meeting

// DownloadFileResponse carries the time-limited download URL
type DownloadFileResponse struct {
	URL string `json:"url"`
}
