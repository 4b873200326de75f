package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/superlumen/internal/channel"
	"github.com/specialistvlad/superlumen/internal/devhost"
	"github.com/specialistvlad/superlumen/internal/inmemorystore"
)

// connect opens the channel to the host process, or starts the in-process
// development host when no host URL is configured.
func (a *App) connect(ctx context.Context) (channel.Channel, error) {
	hostCfg := a.model.Host
	if hostCfg.URL == "" {
		a.logger.Info("🧪 No host configured, using the development host.")
		lb := channel.NewLoopback(a.loop)
		dev := devhost.New(inmemorystore.New(), devhost.Options{
			Config:   a.model.Snapshot(),
			KeyFile:  a.config.KeyFile,
			Navigate: a.navigate,
			Logger:   a.logger,
		})
		dev.Attach(lb)
		return lb, nil
	}

	a.logger.Info("🔌 Connecting to host", "url", hostCfg.URL, "namespace", hostCfg.Namespace)
	sock, err := channel.Dial(ctx, channel.SocketOptions{
		URL:                hostCfg.URL,
		Namespace:          hostCfg.Namespace,
		InsecureSkipVerify: hostCfg.InsecureSkipVerify,
		SyncTimeout:        hostCfg.Timeout,
	}, a.loop)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to host %s: %w", hostCfg.URL, err)
	}
	return sock, nil
}
