package mcpquic

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func TestMagic(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMagic(&buf); err != nil {
		t.Fatalf("WriteMagic: %v", err)
	}
	if err := ReadMagic(&buf); err != nil {
		t.Errorf("ReadMagic: %v", err)
	}

	tests := []struct {
		name string
		in   string
	}{
		{"wrong", "HTTP"},
		{"short", "MC"},
		{"empty", ""},
	}
	for _, tt := range tests {
		err := ReadMagic(strings.NewReader(tt.in))
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
		if tt.name == "wrong" && !errors.Is(err, ErrBadMagic) {
			t.Errorf("%s: err = %v, want ErrBadMagic", tt.name, err)
		}
	}
}

func TestSelfSignedTLSConfig(t *testing.T) {
	cfg, err := SelfSignedTLSConfig()
	if err != nil {
		t.Fatalf("SelfSignedTLSConfig: %v", err)
	}
	if len(cfg.Certificates) != 1 {
		t.Fatalf("certificates = %d", len(cfg.Certificates))
	}
	if len(cfg.NextProtos) != 1 || cfg.NextProtos[0] != ALPNProtocol {
		t.Errorf("NextProtos = %v", cfg.NextProtos)
	}
}

func TestServerTLSConfig_MissingFiles(t *testing.T) {
	if _, err := ServerTLSConfig("/nonexistent/cert.pem", "/nonexistent/key.pem"); err == nil {
		t.Error("expected error for missing files")
	}
}

func TestListener_RoundTrip(t *testing.T) {
	srv := server.NewMCPServer("echo", "0", server.WithToolCapabilities(false))
	srv.AddTool(mcp.NewTool("upper", mcp.WithString("text", mcp.Required())),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			text, _ := req.GetArguments()["text"].(string)
			return mcp.NewToolResultText(strings.ToUpper(text)), nil
		})

	tlsCfg, err := SelfSignedTLSConfig()
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	l, err := Listen("127.0.0.1:0", tlsCfg, srv, logger)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	go l.Serve(ctx)
	defer l.Close()

	c := NewClient(l.Addr().String(), ClientTLSConfig(true))
	if err := c.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer c.Close()

	tools, err := c.ListTools(ctx)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	if len(tools.Tools) != 1 || tools.Tools[0].Name != "upper" {
		t.Errorf("tools = %+v", tools.Tools)
	}

	res, err := c.CallTool(ctx, "upper", map[string]any{"text": "hola"})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if len(res.Content) != 1 {
		t.Fatalf("content = %+v", res.Content)
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok || tc.Text != "HOLA" {
		t.Errorf("content = %+v", res.Content[0])
	}
}

func TestClient_NotConnected(t *testing.T) {
	c := NewClient("127.0.0.1:1", nil)
	if _, err := c.ListTools(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("err = %v, want ErrNotConnected", err)
	}
}
