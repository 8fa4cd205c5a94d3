package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Errors  []string    `json:"errors,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type AuthResponse struct {
	Message string `json:"message,omitempty"`
	Name    string `json:"name"`
}

type CompleteResponse struct {
	Complete bool `json:"complete"`
}

type ArchiveResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// ErrorStrings flattens errors for the json body; error values marshal to {}.
func ErrorStrings(errors []error) []string {
	out := make([]string, 0, len(errors))
	for _, err := range errors {
		if err != nil {
			out = append(out, err.Error())
		}
	}
	return out
}
