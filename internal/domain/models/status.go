package models

// RemoteStatus describes the remote backend configuration
type RemoteStatus struct {
	HasURL       bool `json:"hasUrl"`
	HasKey       bool `json:"hasKey"`
	URLValid     bool `json:"urlValid"`
	KeyValid     bool `json:"keyValid"`
	IsConfigured bool `json:"isConfigured"`
}

// StorageInfo describes the local store
type StorageInfo struct {
	Supported bool   `json:"supported"`
	PostCount int    `json:"postCount,omitempty"`
	DataSize  string `json:"dataSize,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Status is a snapshot of the whole wall session
type Status struct {
	State  string       `json:"state"`
	Posts  int          `json:"posts"`
	Error  string       `json:"error,omitempty"`
	Remote RemoteStatus `json:"remote"`
	Local  StorageInfo  `json:"local"`
}
