package ipc

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"resty.dev/v3"
)

func newClient() *resty.Client {
	path := SocketPath()

	client := resty.NewWithClient(&http.Client{
		Transport: &http.Transport{
			DialContext: func(_ context.Context, _, _ string) (net.Conn, error) {
				return net.Dial("unix", path)
			},
		},
	})

	client.SetBaseURL("http://ledsign")
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")
	client.SetHeader("User-Agent", "ledsign")
	return client
}

// SendStatus pings the daemon and returns its status.
func SendStatus() (*StatusResponse, error) {
	client := newClient()

	result := StatusResponse{}
	response, err := client.R().SetResult(&result).Get("/status")
	if err != nil {
		return nil, fmt.Errorf("error pinging socket: %w", err)
	}
	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error pinging socket: %s", response.Status())
	}
	return &result, nil
}

// SendCommand posts a command to its endpoint on the control socket.
func SendCommand(cmd Command) (*Response, error) {
	client := newClient()

	endpoint := "/" + string(cmd.Type)
	result := Response{}

	var response *resty.Response
	var err error
	if cmd.Type == CommandStatus {
		response, err = client.R().SetResult(&result).Get("/status")
	} else {
		response, err = client.R().SetBody(cmd.Args).SetResult(&result).Post(endpoint)
	}
	if err != nil {
		return nil, err
	}
	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error sending command: %s", response.Status())
	}
	return &result, nil
}

// SendStop asks the daemon to shut down.
func SendStop() error {
	_, err := SendCommand(Command{Type: CommandStop})
	return err
}

// SendNext advances the daemon to the next template in rotation.
func SendNext() error {
	_, err := SendCommand(Command{Type: CommandNext})
	return err
}

// SendLoad replaces the daemon's template rotation.
func SendLoad(templates []string) error {
	_, err := SendCommand(Command{Type: CommandLoad, Args: templates})
	return err
}

// FetchPreview retrieves the current frame as PNG bytes.
func FetchPreview() ([]byte, error) {
	client := newClient()

	response, err := client.R().Get("/preview.png")
	if err != nil {
		return nil, err
	}
	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error fetching preview: %s", response.Status())
	}
	return response.Bytes(), nil
}
