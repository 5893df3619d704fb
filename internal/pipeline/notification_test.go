package pipeline

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
)

const lambdaPayload = `{
  "Records": [
    {
      "eventVersion": "2.1",
      "eventSource": "aws:s3",
      "awsRegion": "us-east-1",
      "eventName": "ObjectCreated:Put",
      "s3": {
        "s3SchemaVersion": "1.0",
        "bucket": {"name": "family-media", "arn": "arn:aws:s3:::family-media"},
        "object": {"key": "albums/pictures/summer+trip/beach%281%29.jpg", "size": 1024}
      }
    }
  ]
}`

func TestFirstRecordDecodesKey(t *testing.T) {
	var event events.S3Event
	if err := json.Unmarshal([]byte(lambdaPayload), &event); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	n, err := FirstRecord(event)
	if err != nil {
		t.Fatalf("FirstRecord returned error: %v", err)
	}
	if n.Bucket != "family-media" {
		t.Fatalf("bucket = %s", n.Bucket)
	}
	if n.Key != "albums/pictures/summer trip/beach(1).jpg" {
		t.Fatalf("key = %q", n.Key)
	}
}

func TestFirstRecordFallsBackToRawKey(t *testing.T) {
	event := events.S3Event{Records: []events.S3EventRecord{{
		S3: events.S3Entity{
			Bucket: events.S3Bucket{Name: "media"},
			Object: events.S3Object{Key: "pictures/my+photo.png"},
		},
	}}}

	n, err := FirstRecord(event)
	if err != nil {
		t.Fatalf("FirstRecord returned error: %v", err)
	}
	if n.Key != "pictures/my photo.png" {
		t.Fatalf("key = %q", n.Key)
	}
}

func TestFirstRecordErrors(t *testing.T) {
	if _, err := FirstRecord(events.S3Event{}); !errors.Is(err, ErrNoRecords) {
		t.Fatalf("expected ErrNoRecords, got %v", err)
	}

	missingBucket := NewNotification("", "pictures/a.jpg")
	if _, err := FirstRecord(missingBucket); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}

	badEscape := events.S3Event{Records: []events.S3EventRecord{{
		S3: events.S3Entity{
			Bucket: events.S3Bucket{Name: "media"},
			Object: events.S3Object{Key: "pictures/%zz.jpg"},
		},
	}}}
	if _, err := FirstRecord(badEscape); err == nil {
		t.Fatal("expected error for malformed escape")
	}
}

func TestNewNotificationRoundTrip(t *testing.T) {
	n, err := FirstRecord(NewNotification("media", "pictures/a b.jpg"))
	if err != nil {
		t.Fatalf("FirstRecord returned error: %v", err)
	}
	if n.Bucket != "media" || n.Key != "pictures/a b.jpg" {
		t.Fatalf("unexpected notice %+v", n)
	}
}
