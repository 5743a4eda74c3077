package nbplot

import (
	"encoding/json"
	"fmt"
	"html"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

const previewPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body>
%s
</body>
</html>
`

// HttpServer serves one rendered chart so it can be looked at in a browser
// without a notebook.
type HttpServer struct {
	chart  Chart
	page   []byte
	host   string
	port   uint16
	mux    *http.ServeMux
	logger logrus.FieldLogger
}

// NewHttpServer renders the chart up front; the server only ever hands out
// that page.
func NewHttpServer(chart Chart, host string, port uint16) (*HttpServer, error) {
	markup, err := chart.HTML()
	if err != nil {
		return nil, err
	}

	title := chart.Options.Title
	if title == "" {
		title = "nbplot"
	}

	s := &HttpServer{
		chart:  chart,
		page:   []byte(fmt.Sprintf(previewPage, html.EscapeString(title), markup)),
		host:   host,
		port:   port,
		mux:    http.NewServeMux(),
		logger: logrus.WithField("tag", "HttpServer"),
	}

	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/options", s.handleOptions)
	s.mux.HandleFunc("/data", s.handleData)

	return s, nil
}

func (s *HttpServer) handleIndex(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		http.NotFound(w, req)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(s.page)
}

func (s *HttpServer) handleOptions(w http.ResponseWriter, req *http.Request) {
	s.writeJSON(w, s.chart.Options)
}

func (s *HttpServer) handleData(w http.ResponseWriter, req *http.Request) {
	s.writeJSON(w, s.chart.Data)
}

func (s *HttpServer) writeJSON(w http.ResponseWriter, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode response")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func (s *HttpServer) Handler() http.Handler {
	return s.mux
}

// Run blocks serving the chart. If openBrowserOnStart is set, the page is
// opened in the default browser once the listener is up.
func (s *HttpServer) Run(openBrowserOnStart bool) error {
	listener, err := net.Listen("tcp", net.JoinHostPort(s.host, strconv.Itoa(int(s.port))))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	url := fmt.Sprintf("http://%s", listener.Addr().String())
	s.logger.Infof("serving chart at %s", url)

	if openBrowserOnStart {
		openBrowser(url, s.logger)
	}

	server := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.Serve(listener)
}
