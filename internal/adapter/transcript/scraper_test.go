package transcript

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"sanctuary/internal/config"
	"sanctuary/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watchPageTemplate = `<html><head><script>var ytInitialPlayerResponse = {"playabilityStatus":{"status":"OK"},
"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[
{"baseUrl":"%[1]s/api/timedtext?v=dQw4w9WgXcQ&lang=en&kind=asr","languageCode":"en","kind":"asr","vssId":"a.en"},
{"baseUrl":"%[1]s/api/timedtext?v=dQw4w9WgXcQ&lang=en","languageCode":"en","vssId":".en"},
{"baseUrl":"%[1]s/api/timedtext?v=dQw4w9WgXcQ&lang=de","languageCode":"de","vssId":".de"}]}},
"videoDetails":{"title":"{not a brace problem}"}};var meta = document.createElement('meta');</script></head></html>`

type queryLog struct {
	mu      sync.Mutex
	queries []string
}

func (q *queryLog) add(raw string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queries = append(q.queries, raw)
}

func (q *queryLog) all() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.queries...)
}

func newScraperServer(t *testing.T, captionBody string, captionStatus int) (*httptest.Server, *queryLog) {
	t.Helper()
	captionQueries := &queryLog{}
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dQw4w9WgXcQ", r.URL.Query().Get("v"))
		fmt.Fprintf(w, watchPageTemplate, srv.URL)
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		captionQueries.add(r.URL.RawQuery)
		w.WriteHeader(captionStatus)
		fmt.Fprint(w, captionBody)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, captionQueries
}

func newTestScraper(baseURL string) *ScraperAcquirer {
	s := NewScraperAcquirer(config.TranscriptConfig{Languages: []string{"en", "en-US"}})
	s.baseURL = baseURL
	return s
}

func TestScraperAcquirer_JSON3(t *testing.T) {
	body := `{"events":[{"tStartMs":0,"segs":[{"utf8":"hello "},{"utf8":"world"}]},{"tStartMs":1000},{"segs":[{"utf8":"\n"}]},{"segs":[{"utf8":"second line"}]}]}`
	srv, queries := newScraperServer(t, body, http.StatusOK)

	text, err := newTestScraper(srv.URL).Acquire(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "hello world\nsecond line", text)

	got := queries.all()
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "fmt=json3")
	assert.NotContains(t, got[0], "kind=asr", "manual track must be preferred")
}

func TestScraperAcquirer_XMLFallback(t *testing.T) {
	body := `<?xml version="1.0" encoding="utf-8" ?><transcript><text start="0" dur="1">it&amp;#39;s a test</text><text start="1" dur="1">of captions</text></transcript>`
	srv, _ := newScraperServer(t, body, http.StatusOK)

	text, err := newTestScraper(srv.URL).Acquire(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "it's a test\nof captions", text)
}

func TestScraperAcquirer_CaptionHTTPError(t *testing.T) {
	srv, _ := newScraperServer(t, "", http.StatusTooManyRequests)

	_, err := newTestScraper(srv.URL).Acquire(context.Background(), "dQw4w9WgXcQ")
	assert.Equal(t, domain.ReasonNetwork, domain.AcquisitionReasonOf(err))
}

func TestScraperAcquirer_NoCaptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<script>var ytInitialPlayerResponse = {"playabilityStatus":{"status":"OK"}};</script>`)
	}))
	defer srv.Close()

	_, err := newTestScraper(srv.URL).Acquire(context.Background(), "dQw4w9WgXcQ")
	assert.Equal(t, domain.ReasonNoTranscript, domain.AcquisitionReasonOf(err))
}

func TestScraperAcquirer_MalformedPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>consent wall</html>`)
	}))
	defer srv.Close()

	_, err := newTestScraper(srv.URL).Acquire(context.Background(), "dQw4w9WgXcQ")
	assert.Equal(t, domain.ReasonMalformed, domain.AcquisitionReasonOf(err))
}

func TestScraperAcquirer_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := newTestScraper(srv.URL).Acquire(context.Background(), "dQw4w9WgXcQ")
	assert.Equal(t, domain.ReasonNetwork, domain.AcquisitionReasonOf(err))
}

func TestParseCaptionBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "   ", ""},
		{"srv3", `<timedtext format="3"><body><p t="0" d="10"><s>one</s><s> two</s></p><p t="10">three &amp;amp; four</p></body></timedtext>`, "one two\nthree & four"},
		{"raw text", "first line\n\n  second line  \n", "first line\nsecond line"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCaptionBody([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseCaptionBody([]byte(`{"events": [`))
	assert.Error(t, err)
}
