package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goto/salt/log"
	"github.com/goto/salt/version"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/cobra"

	"github.com/goto/folio/client/cmd/internal/logger"
	"github.com/goto/folio/config"
)

const (
	versionTimeout = time.Second * 2
	versionRetry   = 2

	githubRepo = "goto/folio"
)

type versionCommand struct {
	logger log.Logger

	isWithServer bool
	host         string
	checkUpdate  bool
}

// NewVersionCommand initializes command to get version
func NewVersionCommand() *cobra.Command {
	v := &versionCommand{
		logger: logger.NewClientLogger(),
	}

	cmd := &cobra.Command{
		Use:     "version",
		Short:   "Print the client version information",
		Example: "folio version [--with-server --host http://localhost:9100]",
		RunE:    v.RunE,
		PreRunE: v.PreRunE,
	}

	cmd.Flags().BoolVar(&v.isWithServer, "with-server", v.isWithServer, "Check for server version")
	cmd.Flags().StringVar(&v.host, "host", "", "Folio service endpoint url")
	cmd.Flags().BoolVar(&v.checkUpdate, "check-update", true, "Look up newer releases")
	return cmd
}

func (v *versionCommand) PreRunE(cmd *cobra.Command, _ []string) error {
	if v.isWithServer {
		return cmd.MarkFlagRequired("host")
	}
	return nil
}

func (v *versionCommand) RunE(_ *cobra.Command, _ []string) error {
	v.logger.Info("Client: %s", config.BuildVersion)

	if v.isWithServer {
		srvVer, err := ServerVersion(v.logger, v.host, config.BuildVersion)
		if err != nil {
			return err
		}
		v.logger.Info("Server: %s", srvVer)
	}

	if !v.checkUpdate {
		return nil
	}
	if updateNotice := version.UpdateNotice(config.BuildVersion, githubRepo); updateNotice != "" {
		v.logger.Info(updateNotice)
	}
	return nil
}

// ServerVersion asks the server at host for its build version
func ServerVersion(l log.Logger, host, clientVer string) (string, error) {
	client := retryablehttp.NewClient()
	client.RetryMax = versionRetry
	client.Logger = l
	client.HTTPClient.Timeout = versionTimeout

	ctx, cancelFunc := context.WithTimeout(context.Background(), versionTimeout*(versionRetry+1))
	defer cancelFunc()

	endpoint := strings.TrimSuffix(host, "/") + "/api/v1beta1/version?client=" + url.QueryEscape(clientVer)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("invalid host %s: %w", host, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed for version: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("request failed for version: %s", resp.Status)
	}

	var body struct {
		Server string `json:"server"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("unable to decode version response: %w", err)
	}
	return body.Server, nil
}
