package pipeline

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
)

var (
	// ErrNoRecords is returned for a notification without any record.
	ErrNoRecords = errors.New("notification has no records")
	// ErrInvalidRecord is returned when the first record lacks a bucket or key.
	ErrInvalidRecord = errors.New("notification record is missing bucket or key")
)

// Notice is the bucket/key pair taken from a notification.
type Notice struct {
	Bucket string
	Key    string
}

// FirstRecord extracts the object named by the first record of event. Later
// records are ignored.
func FirstRecord(event events.S3Event) (Notice, error) {
	if len(event.Records) == 0 {
		return Notice{}, ErrNoRecords
	}
	rec := event.Records[0]

	key := rec.S3.Object.URLDecodedKey
	if key == "" && rec.S3.Object.Key != "" {
		decoded, err := url.QueryUnescape(rec.S3.Object.Key)
		if err != nil {
			return Notice{}, fmt.Errorf("decode object key %q: %w", rec.S3.Object.Key, err)
		}
		key = decoded
	}

	n := Notice{Bucket: rec.S3.Bucket.Name, Key: key}
	if n.Bucket == "" || n.Key == "" {
		return Notice{}, ErrInvalidRecord
	}
	return n, nil
}

// NewNotification builds a single-record S3 event for bucket/key, as
// delivered for an ObjectCreated:Put.
func NewNotification(bucket, key string) events.S3Event {
	return events.S3Event{
		Records: []events.S3EventRecord{{
			EventSource: "aws:s3",
			EventName:   "ObjectCreated:Put",
			S3: events.S3Entity{
				Bucket: events.S3Bucket{Name: bucket},
				Object: events.S3Object{Key: url.QueryEscape(key), URLDecodedKey: key},
			},
		}},
	}
}
