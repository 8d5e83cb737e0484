package main

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"httpfront/internal/wire"
	"httpfront/response"
	"httpfront/server"
)

const PORT = 42069

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	s := server.New(log)
	s.SetURLRoot("")

	s.OnResource("/yourproblem", func(_, _ string, _ wire.Headers, resp response.Bridge) bool {
		writeHTML(resp, response.BadRequest, "400 Bad Request", "Your request honestly kinda sucked.")
		return true
	})

	s.OnResource("/myproblem", func(_, _ string, _ wire.Headers, resp response.Bridge) bool {
		writeHTML(resp, response.InternalServerError, "500 Internal Server Error", "Okay, you know what? This one is on me.")
		return true
	})

	s.OnResource("", func(_, _ string, _ wire.Headers, resp response.Bridge) bool {
		writeHTML(resp, response.OK, "200 OK", "Your request was an absolute banger.")
		return true
	})

	port, err := s.AddInetListener("", PORT)
	if err != nil {
		log.Fatal("failed to open listener", zap.Error(err))
	}
	s.Start()
	defer s.Close()

	log.Info("server started", zap.Int("port", port))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("server gracefully stopped")
}

func writeHTML(resp response.Bridge, code response.StatusCode, title, message string) {
	body := []byte("<html>\n  <head>\n    <title>" + title + "</title>\n  </head>\n  <body>\n    <h1>" +
		title + "</h1>\n    <p>" + message + "</p>\n  </body>\n</html>\n")

	w := resp.(*response.Writer)
	hdrs := response.DefaultHeaders(len(body), false)
	hdrs.Override("Content-Type", "text/html")
	_ = w.WriteStatusLine(code)
	_ = w.WriteHeaders(hdrs)
	_, _ = w.WriteBody(body)
	w.Finish(false)
}
