package domain

type NoticeLevel string

const (
	NoticeSuccess     NoticeLevel = "success"
	NoticeDestructive NoticeLevel = "destructive"
)

// Notice is a transient user-facing message. Rendering is up to the client.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}

func SuccessNotice(message string) *Notice {
	return &Notice{Level: NoticeSuccess, Title: "Success", Message: message}
}

func ErrorNotice(message string) *Notice {
	return &Notice{Level: NoticeDestructive, Title: "Error", Message: message}
}
