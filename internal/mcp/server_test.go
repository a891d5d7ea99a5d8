package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/qiuyou/courtside/internal/domain/registration"
)

func connect(t *testing.T, server *sdkmcp.Server) *sdkmcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) (json.RawMessage, bool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "CallTool %s failed", name)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return json.RawMessage(text.Text), result.IsError
}

func TestServer_ListsTools(t *testing.T) {
	session := connect(t, NewServer(Config{Services: stubServices(), TransportMode: "stdio", DefaultUser: "local"}))

	tools, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, len(buildToolCatalog()))

	byName := make(map[string]*sdkmcp.Tool, len(tools.Tools))
	for _, tool := range tools.Tools {
		byName[tool.Name] = tool
	}
	require.Contains(t, byName, "register_activity")
	require.Contains(t, byName, "count_activities_by_date")
	require.NotEmpty(t, byName["create_activity"].Description)
}

func TestServer_CallToolRunsAsDefaultUser(t *testing.T) {
	session := connect(t, NewServer(Config{Services: stubServices(), TransportMode: "stdio", DefaultUser: "local"}))

	raw, isError := callTool(t, session, "register_activity", map[string]any{"activity_id": "a1"})
	require.False(t, isError, string(raw))

	var res RegistrationResult
	require.NoError(t, json.Unmarshal(raw, &res))
	require.Equal(t, "local", res.UserID)
	require.Equal(t, "a1", res.ActivityID)
	require.True(t, res.PaymentRequired)
}

func TestServer_ToolErrorsAreResults(t *testing.T) {
	svc := stubServices()
	svc.Registrations = registrationStub{
		registerFn: func(_ context.Context, _, _ string) (*registration.Registration, error) {
			return nil, registration.ErrActivityClosed
		},
	}
	session := connect(t, NewServer(Config{Services: svc, TransportMode: "stdio", DefaultUser: "local"}))

	raw, isError := callTool(t, session, "register_activity", map[string]any{"activity_id": "a1"})
	require.True(t, isError)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(raw, &apiErr))
	require.Equal(t, "ACTIVITY_CLOSED", apiErr.Code)
}

func TestServer_DocumentationResources(t *testing.T) {
	session := connect(t, NewServer(Config{Services: stubServices(), TransportMode: "stdio", DefaultUser: "local"}))
	ctx := context.Background()

	resources, err := session.ListResources(ctx, nil)
	require.NoError(t, err)
	require.Len(t, resources.Resources, len(docResources))
	for _, r := range resources.Resources {
		require.Equal(t, "text/markdown", r.MIMEType)
		require.Greater(t, r.Size, int64(0))
	}

	read, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "courtside://docs/index"})
	require.NoError(t, err)
	require.NotEmpty(t, read.Contents)
	require.Equal(t, "courtside://docs/index", read.Contents[0].URI)
	require.Contains(t, read.Contents[0].Text, "Agent Docs Index")
}
