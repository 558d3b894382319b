// Command client runs the load-generating client: `client <host>
// <port> <nsenders> <total-orders>`.
package main

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"matchsrv/infra/logging"
	"matchsrv/internal/loadclient"
)

func main() {
	if len(os.Args) != 5 {
		fmt.Fprintf(os.Stderr, "Usage: %s <host> <port> <# of sender threads> <# of sends>\n", os.Args[0])
		os.Exit(1)
	}
	host := os.Args[1]
	port, err1 := strconv.Atoi(os.Args[2])
	nSenders, err2 := strconv.Atoi(os.Args[3])
	total, err3 := strconv.Atoi(os.Args[4])
	if err1 != nil || err2 != nil || err3 != nil || port <= 0 || nSenders <= 0 || total <= 0 {
		fmt.Fprintln(os.Stderr, "port, sender count, and total order count must all be positive integers")
		os.Exit(1)
	}

	log, err := logging.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	c := loadclient.New(host, port, nSenders, total, log)
	if err := c.Run(); err != nil {
		log.Fatal("load client failed", zap.Error(err))
	}
}
