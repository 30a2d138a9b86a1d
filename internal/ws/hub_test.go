package ws

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship/internal/model"
	"github.com/mcoot/battleship/internal/testutil"
)

type HubSuite struct {
	suite.Suite
	hub   *Hub
	alice model.User
	bob   model.User
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}

func (s *HubSuite) SetupTest() {
	s.hub = NewHub(testutil.NopLogger())
	s.alice = model.User{ID: "alice", Name: "Alice"}
	s.bob = model.User{ID: "bob", Name: "Bob"}
}

func (s *HubSuite) client(user model.User, buffer int) *Client {
	return newClient(nil, user, buffer, testutil.NopLogger())
}

// drain returns every frame queued on c
func drain(c *Client) []string {
	var frames []string
	for {
		select {
		case f, ok := <-c.send:
			if !ok {
				return frames
			}
			frames = append(frames, string(f))
		default:
			return frames
		}
	}
}

func (s *HubSuite) TestRegisterAndCount() {
	s.hub.Register(s.client(s.alice, 4))
	s.hub.Register(s.client(s.bob, 4))

	s.Equal(2, s.hub.ClientCount())
}

func (s *HubSuite) TestUnregisterReportsLastConnection() {
	first := s.client(s.alice, 4)
	second := s.client(s.alice, 4)
	s.hub.Register(first)
	s.hub.Register(second)

	s.False(s.hub.Unregister(first))
	s.True(s.hub.Unregister(second))
	s.Equal(0, s.hub.ClientCount())
}

func (s *HubSuite) TestUnregisterUnknownClient() {
	s.False(s.hub.Unregister(s.client(s.alice, 4)))
}

func (s *HubSuite) TestPublishReachesEveryClient() {
	a := s.client(s.alice, 4)
	b := s.client(s.bob, 4)
	s.hub.Register(a)
	s.hub.Register(b)

	s.hub.Publish(model.Event{Type: model.EventRoomDelete, RoomID: "room-1", Payload: model.RoomDeletePayload{}})

	expected := `{"type":"RoomDelete","payload":{"roomId":"room-1"}}`
	s.Equal([]string{expected}, drain(a))
	s.Equal([]string{expected}, drain(b))
}

func (s *HubSuite) TestPublishSkipsUnencodableEvent() {
	a := s.client(s.alice, 4)
	s.hub.Register(a)

	s.hub.Publish(model.Event{Type: "bogus"})

	s.Empty(drain(a))
}

func (s *HubSuite) TestSendDropsOldestWhenFull() {
	c := s.client(s.alice, 2)

	c.Send([]byte("1"))
	c.Send([]byte("2"))
	c.Send([]byte("3"))

	s.Equal([]string{"2", "3"}, drain(c))
}

func (s *HubSuite) TestSendAfterCloseIsIgnored() {
	c := s.client(s.alice, 2)
	c.close()
	c.close()

	c.Send([]byte("1"))

	s.Empty(drain(c))
}

func (s *HubSuite) TestUnregisterClosesQueue() {
	c := s.client(s.alice, 2)
	s.hub.Register(c)
	s.hub.Unregister(c)

	_, ok := <-c.send
	s.False(ok)
}

func (s *HubSuite) TestCloseDisconnectsAndRefuses() {
	a := s.client(s.alice, 2)
	s.hub.Register(a)

	s.hub.Close()

	s.Equal(0, s.hub.ClientCount())
	_, ok := <-a.send
	s.False(ok)

	b := s.client(s.bob, 2)
	s.hub.Register(b)
	s.Equal(0, s.hub.ClientCount())
	_, ok = <-b.send
	s.False(ok)
}
