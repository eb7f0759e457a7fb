package tlsutil

import (
	"crypto/tls"
	"path/filepath"
	"testing"
)

func TestServerConfig_SelfSigned(t *testing.T) {
	certFile, keyFile, err := WriteSelfSigned([]string{"localhost", "127.0.0.1"}, t.TempDir())
	if err != nil {
		t.Fatalf("WriteSelfSigned() error = %v", err)
	}

	cfg, err := ServerConfig(certFile, keyFile)
	if err != nil {
		t.Fatalf("ServerConfig() error = %v", err)
	}
	if cfg.MinVersion != tls.VersionTLS12 {
		t.Errorf("MinVersion = %x, want TLS 1.2", cfg.MinVersion)
	}
	if len(cfg.Certificates) != 1 {
		t.Errorf("Certificates = %d, want 1", len(cfg.Certificates))
	}

	creds, err := ServerTLSConfig(certFile, keyFile)
	if err != nil {
		t.Fatalf("ServerTLSConfig() error = %v", err)
	}
	if creds.Info().SecurityProtocol != "tls" {
		t.Errorf("SecurityProtocol = %q, want tls", creds.Info().SecurityProtocol)
	}
}

func TestServerConfig_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := ServerConfig(filepath.Join(dir, "nope.pem"), filepath.Join(dir, "nope-key.pem")); err == nil {
		t.Fatal("ServerConfig() expected error for missing files")
	}
}
