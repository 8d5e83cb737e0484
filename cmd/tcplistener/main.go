package main

import (
	"fmt"
	"io"
	"net"
	"net/textproto"
	"os"
	"sort"
	"time"

	"httpfront/request"
)

const PORT = ":42069"

func main() {
	tcp, err := net.Listen("tcp", PORT)
	if err != nil {
		fmt.Println("ERROR: failed to open.\n", err.Error())
		os.Exit(1)
	}
	defer tcp.Close()

	fmt.Println("Listening for TCP traffic on", PORT)
	for {
		conn, err := tcp.Accept()
		if err != nil {
			fmt.Println("ERROR: failed to accept.\n", err)
			continue
		}
		go handleConn(conn)
	}
}

func handleConn(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second)) // optional safety

	req := request.New("", nil)
	buf := make([]byte, 4096)
	var outcome request.Outcome
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			outcome = req.Consume(buf[:n])
			if outcome.Complete || outcome.Oversize {
				break
			}
		}
		if err != nil {
			fmt.Println("ERROR: failed to read request:", err)
			return
		}
	}

	if outcome.Oversize {
		fmt.Println("ERROR: request exceeded the maximum buffered size")
		return
	}

	fmt.Printf("Request line:\n- Method: %s\n- Target: %s\n- Path: %s\n- Query: %s\n- Origin: %s\n",
		req.Method, req.Target, req.Path, req.Query, req.Origin)

	// Print headers
	fmt.Println("Headers:")
	if len(req.Headers) == 0 {
		fmt.Println("- (none)")
	} else {
		keys := make([]string, 0, len(req.Headers))
		for k := range req.Headers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := req.Headers.Get(k)
			// Canonicalize for display (e.g., "content-type" -> "Content-Type")
			fmt.Printf("- %s: %s\n", textproto.CanonicalMIMEHeaderKey(k), v)
		}
	}

	if req.DelayedReply != 0 {
		fmt.Println("Delayed reply:", req.DelayedReply)
	}

	// Minimal HTTP/1.1 response; tell client we're closing the connection.
	resp := "HTTP/1.1 200 OK\r\n" +
		"Content-Type: text/plain\r\n" +
		"Content-Length: 2\r\n" +
		"Connection: close\r\n" +
		"\r\n" +
		"OK"
	_, _ = io.WriteString(conn, resp)
}
