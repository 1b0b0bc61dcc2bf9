package e2e

import (
	"chat-rooms/domain"
	"chat-rooms/errors"
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type testRoomActionsSuite struct {
	BaseStackSuite
}

func TestRoomActionsSuite(t *testing.T) {
	suite.Run(t, &testRoomActionsSuite{})
}

func (s *testRoomActionsSuite) TestJoinLeaveLifecycle() {
	s.Provider.Register()
	entry, err := s.Service.Track("team-standup", true)
	s.Require().NoError(err)

	s.Step("Step 1: Join a connected room", func() {
		outcome := s.Perform(domain.ActionJoin, "team-standup")
		s.Require().True(outcome.Succeeded())
		s.Require().True(entry.Connected())
		s.Sessions.OpenSession(entry)
	})

	s.Step("Step 2: The list shows the room online once refreshed", func() {
		s.Require().Eventually(func() bool {
			rows := s.Service.Rooms()
			return len(rows) == 1 && rows[0].Connected
		}, time.Second, 5*time.Millisecond)
	})

	s.Step("Step 3: Leave closes the session and refreshes the list", func() {
		revision := s.Rooms.Revision()
		outcome := s.Perform(domain.ActionLeave, "team-standup")
		s.Require().True(outcome.Succeeded())
		s.Require().Nil(s.Sessions.GetSession(entry))
		s.Require().Greater(s.Rooms.Revision(), revision)
		s.Require().False(s.Service.Rooms()[0].Connected)
	})

	s.Step("Step 4: History is persisted newest first, nothing reported", func() {
		history := s.WaitHistory("team-standup", 2)
		s.Require().Equal("leave", history[0].Action)
		s.Require().Equal("join", history[1].Action)
		s.Require().Empty(s.Notifier.Reports())
	})
}

func (s *testRoomActionsSuite) TestJoinWithoutConnection() {
	_, err := s.Service.Track("team-standup", false)
	s.Require().NoError(err)

	outcome := s.Perform(domain.ActionJoin, "team-standup")

	s.Require().ErrorIs(outcome.Err, errors.ErrNotConnected)
	s.Require().True(outcome.Reported)
	reports := s.WaitReports(1)
	s.Require().Len(reports, 1)
	s.Require().True(reports[0].Warning)
	s.Require().Equal(s.Localizer.Text(domain.MsgWarning), reports[0].Title)
	s.Require().Equal(s.Localizer.Text(domain.MsgHaveToBeConnectedToJoin), reports[0].Message)
	joins, _ := s.Provider.Room("team-standup").Calls()
	s.Require().Zero(joins)
	history := s.WaitHistory("team-standup", 1)
	s.Require().True(history[0].Reported)
	s.Require().Equal(errors.ErrNotConnected.Error(), history[0].Error)
}

func (s *testRoomActionsSuite) TestJoinFailuresAreClassified() {
	_, err := s.Service.Track("team-standup", true)
	s.Require().NoError(err)

	s.Step("Provider not registered", func() {
		outcome := s.Perform(domain.ActionJoin, "team-standup")
		s.Require().Equal(domain.ReasonProviderNotRegistered, outcome.Reason)
		reports := s.WaitReports(1)
		s.Require().Equal(s.Localizer.Text(domain.MsgChatRoomNotConnected, "team-standup"), reports[0].Message)
	})

	s.Step("Subscription already exists", func() {
		s.Provider.Register()
		s.Require().True(s.Perform(domain.ActionJoin, "team-standup").Succeeded())
		outcome := s.Perform(domain.ActionJoin, "team-standup")
		s.Require().Equal(domain.ReasonSubscriptionAlreadyExists, outcome.Reason)
		reports := s.WaitReports(2)
		s.Require().Equal(s.Localizer.Text(domain.MsgError), reports[1].Title)
		s.Require().Equal(s.Localizer.Text(domain.MsgChatRoomAlreadyJoined, "team-standup"), reports[1].Message)
	})

	s.Step("Any other failure", func() {
		s.Provider.Room("team-standup").FailNext(stderrors.New("connection reset"))
		outcome := s.Perform(domain.ActionJoin, "team-standup")
		s.Require().Equal(domain.ReasonOther, outcome.Reason)
		reports := s.WaitReports(3)
		s.Require().Equal(s.Localizer.Text(domain.MsgFailedToJoinChatRoom, "team-standup"), reports[2].Message)
	})

	s.Step("Every failure is persisted as reported", func() {
		history := s.WaitHistory("team-standup", 4)
		s.Require().Equal(domain.ReasonOther.String(), history[0].Reason)
		s.Require().True(history[0].Reported)
		s.Require().Contains(history[0].Error, "connection reset")
	})
}

func (s *testRoomActionsSuite) TestRemoveIsSilent() {
	s.Provider.Register()
	entry, err := s.Service.Track("random", true)
	s.Require().NoError(err)
	s.Require().True(s.Perform(domain.ActionJoin, "random").Succeeded())
	s.Sessions.OpenSession(entry)

	// The leave done on removal fails
	s.Provider.Room("random").FailNext(stderrors.New("connection reset"))
	outcome := s.Perform(domain.ActionRemove, "random")

	s.Require().Equal(domain.ReasonOther, outcome.Reason)
	s.Require().False(outcome.Reported)
	s.Require().Nil(s.Sessions.GetSession(entry))
	s.Require().Empty(s.Service.Rooms())
	history := s.WaitHistory("random", 3)
	s.Require().False(history[0].Reported)
	s.Require().Never(func() bool { return len(s.Notifier.Reports()) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}

func (s *testRoomActionsSuite) TestActionsOnOneRoomRunInOrder() {
	s.Provider.Register()
	_, err := s.Service.Track("team-standup", true)
	s.Require().NoError(err)

	actions := []domain.Action{domain.ActionJoin, domain.ActionLeave, domain.ActionJoin, domain.ActionLeave, domain.ActionJoin}
	pending := make([]<-chan domain.ActionOutcome, 0, len(actions))
	for _, action := range actions {
		done, err := s.Service.Perform(context.Background(), action, "team-standup")
		s.Require().NoError(err)
		pending = append(pending, done)
	}

	for i, done := range pending {
		outcome := <-done
		s.Require().True(outcome.Succeeded(), "action %d: %v", i, outcome.Err)
	}
	s.Require().True(s.Provider.Room("team-standup").IsJoined())
	history := s.WaitHistory("team-standup", len(actions))
	for i, outcome := range history {
		s.Require().Equal(actions[len(actions)-1-i].String(), outcome.Action)
	}
	s.Require().Empty(s.Notifier.Reports())
}

func (s *testRoomActionsSuite) TestHealth() {
	if s.Config.HealthAddr == "" {
		s.T().Skip("HEALTH_ADDR not set")
	}
	conn, err := grpc.NewClient(s.Config.HealthAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	s.Require().NoError(err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	s.Require().NoError(err)
	s.Require().Equal(healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
