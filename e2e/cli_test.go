package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maddken/jokerparty/internal/api"
	"github.com/maddken/jokerparty/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	deviceFile string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "jokerctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/jokerctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		deviceFile: filepath.Join(t.TempDir(), "device"),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--device-file", r.deviceFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		RosterService:  app.RosterService,
		ChatService:    app.ChatService,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type gameResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Started     bool   `json:"started"`
	JokerTarget int    `json:"joker_target"`
	HasPassword bool   `json:"has_password"`
}

type playerResponse struct {
	ID          string  `json:"id"`
	GameID      string  `json:"game_id"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	DisguisedAs *string `json:"disguised_as"`
}

type messageResponse struct {
	ID        string `json:"id"`
	PlayerID  string `json:"player_id"`
	Content   string `json:"content"`
	IsPrivate bool   `json:"is_private"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type msgOutput struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_GameCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create a game
	output, err := cli.run("game", "create")
	require.NoError(t, err, "output: %s", output)

	var created gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	assert.Len(t, created.Code, 6)
	assert.False(t, created.Started)
	code := created.Code

	// Get it back
	output, err = cli.run("game", "get", code)
	require.NoError(t, err, "output: %s", output)

	var fetched gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &fetched))
	assert.Equal(t, created.ID, fetched.ID)

	// List includes it
	output, err = cli.run("game", "list")
	require.NoError(t, err, "output: %s", output)

	var games []gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &games))
	assert.Len(t, games, 1)

	// Adjust the joker target
	output, err = cli.run("game", "joker-target", code, "--count", "2")
	require.NoError(t, err, "output: %s", output)

	var updated gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &updated))
	assert.Equal(t, 2, updated.JokerTarget)
}

func TestCLI_FullSessionFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	// Two CLI runners with separate device files act as two players
	ann := newCLIRunner(t, ts.addr)
	bob := &cliRunner{
		binaryPath: ann.binaryPath,
		serverURL:  ann.serverURL,
		deviceFile: filepath.Join(t.TempDir(), "device2"),
	}

	// Ann creates a game
	output, err := ann.run("game", "create")
	require.NoError(t, err, "output: %s", output)
	var created gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	code := created.Code
	t.Logf("Created game: %s", code)

	// Both join
	output, err = ann.run("game", "join", code, "--name", "Ann")
	require.NoError(t, err, "output: %s", output)
	var annPlayer playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &annPlayer))
	assert.NotEmpty(t, annPlayer.Role)

	output, err = bob.run("game", "join", code, "--name", "Bob")
	require.NoError(t, err, "output: %s", output)
	var bobPlayer playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &bobPlayer))

	// Ann rejoins from the same device and gets the same player back
	output, err = ann.run("game", "join", code, "--name", "Ann")
	require.NoError(t, err, "output: %s", output)
	var annAgain playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &annAgain))
	assert.Equal(t, annPlayer.ID, annAgain.ID)

	// Start deals exactly one joker
	output, err = ann.run("game", "start", code)
	require.NoError(t, err, "output: %s", output)

	output, err = ann.run("game", "players", code)
	require.NoError(t, err, "output: %s", output)
	var players []playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &players))
	require.Len(t, players, 2)

	jokers := 0
	for _, p := range players {
		if p.Role == "joker" {
			jokers++
			require.NotNil(t, p.DisguisedAs)
		}
	}
	assert.Equal(t, 1, jokers)
	t.Logf("Roles dealt, one joker in play")

	// A private message from Ann to Bob
	output, err = ann.run("msg", "post", code, "watch", "out", "--from", annPlayer.ID, "--to", bobPlayer.ID)
	require.NoError(t, err, "output: %s", output)
	var posted messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &posted))
	assert.True(t, posted.IsPrivate)

	output, err = bob.run("msg", "list", code, "--viewer", bobPlayer.ID)
	require.NoError(t, err, "output: %s", output)
	var msgs []messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgs))
	assert.Len(t, msgs, 1)

	// Next round keeps the joker set
	output, err = ann.run("game", "next-round", code)
	require.NoError(t, err, "output: %s", output)

	output, err = ann.run("game", "players", code)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &players))

	jokersAfter := 0
	for _, p := range players {
		if p.Role == "joker" {
			jokersAfter++
		}
	}
	assert.Equal(t, 1, jokersAfter)

	// Stop returns the game to the lobby
	output, err = ann.run("game", "stop", code)
	require.NoError(t, err, "output: %s", output)

	var stopMsg msgOutput
	require.NoError(t, json.Unmarshal([]byte(output), &stopMsg))
	assert.Contains(t, stopMsg.Message, "stopped")

	output, err = ann.run("game", "get", code)
	require.NoError(t, err, "output: %s", output)
	var stopped gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &stopped))
	assert.False(t, stopped.Started)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Get non-existent game
	output, err := cli.run("game", "get", "ZZZZZZ")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")

	// Start without enough players
	output, err = cli.run("game", "create")
	require.NoError(t, err)
	var created gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))

	output, err = cli.run("game", "join", created.Code, "--name", "Solo")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("game", "start", created.Code)
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not enough players")
}
