// Package loadclient implements the load-generating client: a fixed
// number of sender goroutines, each owning one connection and a
// receiver goroutine that drains notifications off it. Grounded on
// original_source/client.cpp, with one deliberate deviation: that
// file's quantity stepping (`quantity += ++quantity % 100`) is a
// compounding-increment defect called out in spec.md §9 and is not
// reproduced here — quantity simply cycles through 1..100.
package loadclient

import (
	"fmt"
	"io"
	"net"
	"sync"

	"go.uber.org/zap"

	"matchsrv/internal/wire"
)

var stocks = []string{"IBM", "DEL", "SNY", "BBG", "MSN"}

type traderInfo struct {
	name string
	id   int32
}

var traders = []traderInfo{
	{"John", 100}, {"James", 101}, {"Fred", 102}, {"Tony", 103}, {"Mike", 104},
	{"Jim", 105}, {"Dave", 106}, {"Andy", 107}, {"Dan", 108}, {"Luke", 109},
}

// Client drives nSenders connections against host:port, each sending
// its share of total orders and logging what it receives back.
type Client struct {
	host     string
	port     int
	nSenders int
	total    int
	log      *zap.Logger
}

// New returns a Client ready to Run.
func New(host string, port, nSenders, total int, log *zap.Logger) *Client {
	return &Client{host: host, port: port, nSenders: nSenders, total: total, log: log}
}

// Run launches nSenders sender/receiver pairs and blocks until every
// sender has sent its share of orders and its connection has closed.
func (c *Client) Run() error {
	perSender := c.total / c.nSenders

	var wg sync.WaitGroup
	errs := make([]error, c.nSenders)
	for i := 0; i < c.nSenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.sender(int32(100+i), perSender)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) sender(traderID int32, nOrders int) error {
	addr := fmt.Sprintf("%s:%d", c.host, c.port)
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("loadclient: dial %s: %w", addr, err)
	}
	defer conn.Close()

	if _, err := conn.Write(wire.EncodeHandshake(traderID)); err != nil {
		return fmt.Errorf("loadclient: send handshake: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.receiver(conn, traderID)
	}()

	stockIdx, traderIdx, side, qty := 0, 0, wire.Buy, int32(1)
	for i := 0; i < nOrders; i++ {
		frame, err := wire.Encode(wire.Frame{
			Stock:    stocks[stockIdx],
			Trader:   traders[traderIdx].name,
			TraderID: traders[traderIdx].id,
			Quantity: qty,
			Balance:  qty,
			Side:     side,
		})
		if err != nil {
			return fmt.Errorf("loadclient: encode order %d: %w", i, err)
		}
		if _, err := conn.Write(frame); err != nil {
			return fmt.Errorf("loadclient: send order %d: %w", i, err)
		}

		stockIdx = (stockIdx + 1) % len(stocks)
		traderIdx = (traderIdx + 1) % len(traders)
		if side == wire.Buy {
			side = wire.Sell
		} else {
			side = wire.Buy
		}
		qty = qty%100 + 1
	}

	conn.Close()
	<-done
	return nil
}

func (c *Client) receiver(conn net.Conn, traderID int32) {
	buf := make([]byte, wire.FrameSize)
	for {
		if _, err := io.ReadFull(conn, buf); err != nil {
			return
		}
		f, err := wire.Decode(buf)
		if err != nil {
			c.log.Warn("loadclient: bad notification frame", zap.Int32("trader_id", traderID), zap.Error(err))
			continue
		}
		c.log.Info("received notification",
			zap.Int32("trader_id", traderID),
			zap.String("stock", f.Stock),
			zap.String("side", f.Side.String()),
			zap.Int32("balance", f.Balance))
	}
}
