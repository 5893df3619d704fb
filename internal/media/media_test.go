package media

import "testing"

func TestShouldProcess(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		wantOK     bool
		wantReason string
	}{
		{"picture image", "albums/pictures/vacation.jpg", true, ""},
		{"picture video", "albums/pictures/clip.mp4", true, ""},
		{"no marker", "albums/photos/vacation.jpg", false, ReasonNotPictures},
		{"empty key", "", false, ReasonNotPictures},
		{"derivative without marker", "thumbnails/vacation.jpg", false, ReasonNotPictures},
		{"derivative with marker", "thumbnails/pictures-vacation.jpg", false, ReasonDerivative},
		{"derivative nested", "thumbnails/pictures/clip.mp4.png", false, ReasonDerivative},
		{"marker in file name", "docs/readme.pictures.txt", true, ""},
		{"thumbnails not at root", "pictures/thumbnails/a.jpg", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShouldProcess(tt.key)
			if got.Proceed != tt.wantOK {
				t.Fatalf("ShouldProcess(%q).Proceed = %v, want %v", tt.key, got.Proceed, tt.wantOK)
			}
			if got.Reason != tt.wantReason {
				t.Fatalf("ShouldProcess(%q).Reason = %q, want %q", tt.key, got.Reason, tt.wantReason)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		key  string
		want Kind
	}{
		{"pictures/a.jpg", KindImage},
		{"pictures/a.JPEG", KindImage},
		{"pictures/a.Png", KindImage},
		{"pictures/a.gif", KindImage},
		{"pictures/a.mp4", KindVideo},
		{"pictures/a.MOV", KindVideo},
		{"pictures/a.avi", KindVideo},
		{"pictures/a.mkv", KindVideo},
		{"pictures/a.webp", KindUnsupported},
		{"docs/readme.pictures.txt", KindUnsupported},
		{"pictures/noext", KindUnsupported},
		{"pictures.jpg/noext", KindUnsupported},
		{"pictures/archive.jpg.zip", KindUnsupported},
		{"pictures/clip.png.mp4", KindVideo},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := Classify(tt.key); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.key, got, tt.want)
			}
		})
	}
}

func TestClassifyCoversSupportedExtensions(t *testing.T) {
	for _, ext := range SupportedExtensions() {
		if Classify("pictures/file"+ext) == KindUnsupported {
			t.Errorf("extension %s listed as supported but classified unsupported", ext)
		}
	}
}

func TestExtension(t *testing.T) {
	if got := Extension("docs/readme.pictures.TXT"); got != ".txt" {
		t.Fatalf("Extension = %q, want .txt", got)
	}
	if got := Extension("pictures/noext"); got != "" {
		t.Fatalf("Extension = %q, want empty", got)
	}
}

func TestDerivativeKey(t *testing.T) {
	tests := []struct {
		key      string
		kind     Kind
		wantKey  string
		wantFile string
	}{
		{"albums/pictures/vacation.jpg", KindImage, "thumbnails/vacation.jpg", "thumbnail-vacation.jpg"},
		{"albums/pictures/clip.mp4", KindVideo, "thumbnails/clip.mp4.png", "thumbnail-clip.mp4.png"},
		{"pictures/broken.mp4", KindVideo, "thumbnails/broken.mp4.png", "thumbnail-broken.mp4.png"},
		{"pictures.png", KindImage, "thumbnails/pictures.png", "thumbnail-pictures.png"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			first := DerivativeKey(tt.key, tt.kind)
			if first != tt.wantKey {
				t.Fatalf("DerivativeKey(%q) = %q, want %q", tt.key, first, tt.wantKey)
			}
			if again := DerivativeKey(tt.key, tt.kind); again != first {
				t.Fatalf("DerivativeKey not deterministic: %q then %q", first, again)
			}
			if got := DerivativeFileName(tt.key, tt.kind); got != tt.wantFile {
				t.Fatalf("DerivativeFileName(%q) = %q, want %q", tt.key, got, tt.wantFile)
			}
			if !IsDerivative(first) {
				t.Fatalf("derivative key %q must be recognised as derivative", first)
			}
		})
	}
}

func TestSourceFileName(t *testing.T) {
	tests := map[string]string{
		"albums/pictures/vacation.jpg": "vacation.jpg",
		"pictures/..":                  "source",
		"":                             "source",
		"/":                            "source",
	}
	for key, want := range tests {
		if got := SourceFileName(key); got != want {
			t.Errorf("SourceFileName(%q) = %q, want %q", key, got, want)
		}
	}
}
