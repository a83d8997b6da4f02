package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/systech-labs/deskflow/internal/shared/biztime"
)

// MaxAttachmentSize bounds the metadata accepted for an upload.
const MaxAttachmentSize int64 = 25 << 20

// Attachment is the metadata of a file stored elsewhere.
type Attachment struct {
	id          uint
	ticketID    uint
	fileName    string
	contentType string
	sizeBytes   int64
	url         string
	uploadedBy  uint
	createdAt   time.Time
}

func NewAttachment(ticketID uint, fileName, contentType string, sizeBytes int64, url string, uploadedBy uint) (*Attachment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, fmt.Errorf("file name is required")
	}
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("attachment URL is required")
	}
	if sizeBytes < 0 || sizeBytes > MaxAttachmentSize {
		return nil, fmt.Errorf("attachment size must be between 0 and %d bytes", MaxAttachmentSize)
	}
	if uploadedBy == 0 {
		return nil, fmt.Errorf("uploader ID is required")
	}

	return &Attachment{
		ticketID:    ticketID,
		fileName:    fileName,
		contentType: contentType,
		sizeBytes:   sizeBytes,
		url:         url,
		uploadedBy:  uploadedBy,
		createdAt:   biztime.NowUTC(),
	}, nil
}

func ReconstructAttachment(id, ticketID uint, fileName, contentType string, sizeBytes int64, url string, uploadedBy uint, createdAt time.Time) *Attachment {
	return &Attachment{
		id:          id,
		ticketID:    ticketID,
		fileName:    fileName,
		contentType: contentType,
		sizeBytes:   sizeBytes,
		url:         url,
		uploadedBy:  uploadedBy,
		createdAt:   createdAt,
	}
}

func (a *Attachment) ID() uint             { return a.id }
func (a *Attachment) TicketID() uint       { return a.ticketID }
func (a *Attachment) FileName() string     { return a.fileName }
func (a *Attachment) ContentType() string  { return a.contentType }
func (a *Attachment) SizeBytes() int64     { return a.sizeBytes }
func (a *Attachment) URL() string          { return a.url }
func (a *Attachment) UploadedBy() uint     { return a.uploadedBy }
func (a *Attachment) CreatedAt() time.Time { return a.createdAt }

func (a *Attachment) SetID(id uint) {
	a.id = id
}
