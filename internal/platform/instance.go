package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const showCommand = "show"

// InstanceGuard holds the single-instance lock and listens for a second
// launch asking the running instance to come forward.
type InstanceGuard struct {
	listener net.Listener
	address  string
}

// AcquireSingleInstance binds a deterministic localhost port. When the port is
// taken the running instance is asked to show itself and ErrAlreadyRunning is
// returned.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if notifyErr := notifyRunning(address); notifyErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrAlreadyRunning, notifyErr)
		}
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// Serve calls onShow whenever another launch asks for the window. It returns
// once the guard is released.
func (guard *InstanceGuard) Serve(onShow func()) {
	if guard == nil || guard.listener == nil {
		return
	}
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			return
		}
		go handleInstanceConn(conn, onShow)
	}
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	return guard.listener.Close()
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func handleInstanceConn(conn net.Conn, onShow func()) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return
	}
	if strings.TrimSpace(line) == showCommand && onShow != nil {
		onShow()
	}
}

func notifyRunning(address string) error {
	conn, err := net.DialTimeout("tcp", address, time.Second)
	if err != nil {
		return err
	}
	defer conn.Close()
	_, err = fmt.Fprintln(conn, showCommand)
	return err
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
