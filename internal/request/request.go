package request

// SendSMSRequest is the JSON body accepted by POST /sms.
type SendSMSRequest struct {
	// Numbers are the recipients, at most 100 per request.
	Numbers []string `json:"numbers"`
	// Content is the message text sent to every recipient.
	Content string `json:"content"`
}
