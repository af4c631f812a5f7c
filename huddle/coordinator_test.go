package huddle_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/bitmark-inc/huddle-api/huddle"
	"github.com/bitmark-inc/huddle-api/mocks"
	"github.com/bitmark-inc/huddle-api/schema"
	"github.com/bitmark-inc/huddle-api/utils"
)

func text(id string, data map[string]interface{}) string {
	return utils.Localize("en", id, data)
}

type CoordinatorTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	store       *memoryStore
	gateway     *mocks.MockNotificationGateway
	coordinator *huddle.Coordinator
}

func (ts *CoordinatorTestSuite) SetupTest() {
	ts.ctrl = gomock.NewController(ts.T())
	ts.store = newMemoryStore()
	ts.gateway = mocks.NewMockNotificationGateway(ts.ctrl)
	ts.coordinator = huddle.NewCoordinator(ts.store, ts.gateway, huddle.DefaultConfig())
}

func (ts *CoordinatorTestSuite) TearDownTest() {
	ts.ctrl.Finish()
}

func (ts *CoordinatorTestSuite) request(kind schema.Kind, status schema.Status, channelID string) schema.Request {
	r := schema.Request{
		Kind:             kind,
		RequesterID:      "U1",
		Topic:            "VPN",
		Description:      "Cannot connect",
		OriginChannelID:  "CORIGIN",
		Status:           status,
		AdvertisementRef: strPtr("CORIGIN/1.2"),
	}
	if channelID != "" {
		r.SessionChannelID = strPtr(channelID)
	}
	return ts.store.put(r)
}

func (ts *CoordinatorTestSuite) TestJoin() {
	r := ts.request(schema.KindCommunication, schema.StatusOpen, "C100")

	gomock.InOrder(
		ts.gateway.EXPECT().InviteUsers(gomock.Any(), "C100", "U2").Return(nil),
		ts.gateway.EXPECT().PostMessage(gomock.Any(), "C100", huddle.Message{
			Text: text("join.notice", map[string]interface{}{"User": "U2"}),
			Body: text("join.notice", map[string]interface{}{"User": "U2"}),
		}).Return(huddle.MessageRef{}, nil),
	)

	result := ts.coordinator.Join(context.Background(), r.ID, "U2")
	ts.True(result.Success)
	ts.Equal("C100", result.ChannelID)
	ts.Equal(text("join.success", map[string]interface{}{"Channel": "C100"}), result.Message)
	ts.Equal(schema.StatusOpen, ts.store.get(r.ID).Status)
}

func (ts *CoordinatorTestSuite) TestJoinAlreadyInChannel() {
	r := ts.request(schema.KindCommunication, schema.StatusOpen, "C100")
	ts.gateway.EXPECT().InviteUsers(gomock.Any(), "C100", "U2").Return(fmt.Errorf("invite: %w", huddle.ErrAlreadyInChannel))

	result := ts.coordinator.Join(context.Background(), r.ID, "U2")
	ts.True(result.Success)
	ts.Equal(text("join.already", map[string]interface{}{"Channel": "C100"}), result.Message)
	ts.Equal(schema.StatusOpen, ts.store.get(r.ID).Status)
}

func (ts *CoordinatorTestSuite) TestJoinRejections() {
	closed := ts.request(schema.KindCommunication, schema.StatusClosed, "C100")
	result := ts.coordinator.Join(context.Background(), closed.ID, "U2")
	ts.False(result.Success)
	ts.Equal(text("join.closed", nil), result.Message)

	noChannel := ts.request(schema.KindCommunication, schema.StatusOpen, "")
	result = ts.coordinator.Join(context.Background(), noChannel.ID, "U2")
	ts.False(result.Success)
	ts.Equal(text("join.no_channel", nil), result.Message)

	result = ts.coordinator.Join(context.Background(), "3f2504e0-4f89-11d3-9a0c-0305e82c3301", "U2")
	ts.False(result.Success)
	ts.Equal(text("request.not_found", nil), result.Message)

	help := ts.request(schema.KindHelp, schema.StatusOpen, "C200")
	result = ts.coordinator.Join(context.Background(), help.ID, "U2")
	ts.False(result.Success)
	ts.Equal(text("request.unsupported_action", nil), result.Message)
}

func (ts *CoordinatorTestSuite) TestJoinInviteFailure() {
	r := ts.request(schema.KindCommunication, schema.StatusOpen, "C100")
	ts.gateway.EXPECT().InviteUsers(gomock.Any(), "C100", "U2").Return(fmt.Errorf("ratelimited"))

	result := ts.coordinator.Join(context.Background(), r.ID, "U2")
	ts.False(result.Success)
	ts.Equal(text("join.failed", nil), result.Message)
}

func (ts *CoordinatorTestSuite) TestJoinArchivedChannel() {
	r := ts.request(schema.KindCommunication, schema.StatusOpen, "C100")
	ts.gateway.EXPECT().InviteUsers(gomock.Any(), "C100", "U2").Return(huddle.ErrChannelGone)

	result := ts.coordinator.Join(context.Background(), r.ID, "U2")
	ts.False(result.Success)
	ts.Equal(text("join.closed", nil), result.Message)
}

func (ts *CoordinatorTestSuite) TestJoinAfterExpiry() {
	r := ts.request(schema.KindCommunication, schema.StatusOpen, "C100")
	orchestrator := huddle.NewOrchestrator(ts.store, ts.gateway, nil, nil, huddle.DefaultConfig())

	ts.gateway.EXPECT().ArchiveChannel(gomock.Any(), "C100").Return(nil)
	ts.gateway.EXPECT().PostMessage(gomock.Any(), "C100", gomock.Any()).Return(huddle.MessageRef{}, fmt.Errorf("is_archived"))
	ts.gateway.EXPECT().UpdateMessage(gomock.Any(), huddle.MessageRef{ChannelID: "CORIGIN", Timestamp: "1.2"}, gomock.Any()).Return(nil)
	ts.NoError(orchestrator.ExpireRequest(context.Background(), r.ID))

	result := ts.coordinator.Join(context.Background(), r.ID, "U2")
	ts.False(result.Success)
	ts.Equal(text("join.closed", nil), result.Message)
}

func (ts *CoordinatorTestSuite) TestClaim() {
	r := ts.request(schema.KindHelp, schema.StatusOpen, "C200")

	var advertisement huddle.Message
	ts.gateway.EXPECT().InviteUsers(gomock.Any(), "C200", "U2").Return(nil)
	ts.gateway.EXPECT().PostMessage(gomock.Any(), "C200", gomock.Any()).Return(huddle.MessageRef{}, nil)
	ts.gateway.EXPECT().OpenDirectConversation(gomock.Any(), "U1", "U2").Return("D12", nil)
	ts.gateway.EXPECT().PostMessage(gomock.Any(), "D12", gomock.Any()).Return(huddle.MessageRef{}, nil)
	ts.gateway.EXPECT().OpenDirectConversation(gomock.Any(), "U1").Return("D1", nil)
	ts.gateway.EXPECT().PostMessage(gomock.Any(), "D1", gomock.Any()).Return(huddle.MessageRef{}, nil)
	ts.gateway.EXPECT().UpdateMessage(gomock.Any(), huddle.MessageRef{ChannelID: "CORIGIN", Timestamp: "1.2"}, gomock.Any()).
		Do(func(_ context.Context, _ huddle.MessageRef, msg huddle.Message) { advertisement = msg }).
		Return(nil)

	result := ts.coordinator.Claim(context.Background(), r.ID, "U2")
	ts.True(result.Success)
	ts.Equal("D12", result.ChannelID)
	ts.Equal(text("claim.success", map[string]interface{}{"Requester": "U1"}), result.Message)

	got := ts.store.get(r.ID)
	ts.Equal(schema.StatusInProgress, got.Status)
	ts.Equal("U2", got.Helper())

	ts.Len(advertisement.Buttons, 1)
	ts.Equal(huddle.ActionDetails, advertisement.Buttons[0].Action)
}

func (ts *CoordinatorTestSuite) TestClaimNotificationsAreBestEffort() {
	r := ts.request(schema.KindHelp, schema.StatusOpen, "C200")

	ts.gateway.EXPECT().InviteUsers(gomock.Any(), "C200", "U2").Return(fmt.Errorf("channel_not_found"))
	ts.gateway.EXPECT().OpenDirectConversation(gomock.Any(), "U1", "U2").Return("", fmt.Errorf("ratelimited"))
	ts.gateway.EXPECT().OpenDirectConversation(gomock.Any(), "U1").Return("D1", nil)
	ts.gateway.EXPECT().PostMessage(gomock.Any(), "D1", gomock.Any()).Return(huddle.MessageRef{}, fmt.Errorf("ratelimited"))
	ts.gateway.EXPECT().UpdateMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return(fmt.Errorf("message_not_found"))

	result := ts.coordinator.Claim(context.Background(), r.ID, "U2")
	ts.True(result.Success)
	ts.Empty(result.ChannelID)
	ts.Equal(schema.StatusInProgress, ts.store.get(r.ID).Status)
}

func (ts *CoordinatorTestSuite) TestClaimRejections() {
	open := ts.request(schema.KindHelp, schema.StatusOpen, "C200")
	result := ts.coordinator.Claim(context.Background(), open.ID, "U1")
	ts.False(result.Success)
	ts.Equal(text("claim.self", nil), result.Message)
	ts.Equal(schema.StatusOpen, ts.store.get(open.ID).Status)
	ts.Nil(ts.store.get(open.ID).HelperID)

	taken := ts.request(schema.KindHelp, schema.StatusInProgress, "C200")
	result = ts.coordinator.Claim(context.Background(), taken.ID, "U3")
	ts.False(result.Success)
	ts.Equal(text("claim.in_progress", nil), result.Message)

	closed := ts.request(schema.KindHelp, schema.StatusClosed, "C200")
	result = ts.coordinator.Claim(context.Background(), closed.ID, "U3")
	ts.False(result.Success)
	ts.Equal(text("claim.inactive", nil), result.Message)

	resolved := ts.request(schema.KindHelp, schema.StatusResolved, "C200")
	result = ts.coordinator.Claim(context.Background(), resolved.ID, "U3")
	ts.False(result.Success)
	ts.Equal(text("claim.inactive", nil), result.Message)

	comm := ts.request(schema.KindCommunication, schema.StatusOpen, "C100")
	result = ts.coordinator.Claim(context.Background(), comm.ID, "U3")
	ts.False(result.Success)
	ts.Equal(text("request.unsupported_action", nil), result.Message)

	result = ts.coordinator.Claim(context.Background(), "not-a-request", "U3")
	ts.False(result.Success)
	ts.Equal(text("request.not_found", nil), result.Message)
}

func (ts *CoordinatorTestSuite) TestConcurrentClaimsHaveOneWinner() {
	r := ts.request(schema.KindHelp, schema.StatusOpen, "C200")

	ts.gateway.EXPECT().InviteUsers(gomock.Any(), "C200", gomock.Any()).Return(nil).Times(1)
	ts.gateway.EXPECT().OpenDirectConversation(gomock.Any(), "U1", gomock.Any()).Return("D12", nil).Times(1)
	ts.gateway.EXPECT().OpenDirectConversation(gomock.Any(), "U1").Return("D1", nil).Times(1)
	ts.gateway.EXPECT().PostMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return(huddle.MessageRef{}, nil).Times(3)
	ts.gateway.EXPECT().UpdateMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	const helpers = 10
	results := make([]huddle.Result, helpers)
	var wg sync.WaitGroup
	for i := 0; i < helpers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = ts.coordinator.Claim(context.Background(), r.ID, fmt.Sprintf("H%d", i))
		}(i)
	}
	wg.Wait()

	winner := ""
	for i, result := range results {
		if result.Success {
			ts.Empty(winner, "more than one claim succeeded")
			winner = fmt.Sprintf("H%d", i)
			continue
		}
		ts.Equal(text("claim.in_progress", nil), result.Message)
	}

	ts.NotEmpty(winner)
	got := ts.store.get(r.ID)
	ts.Equal(schema.StatusInProgress, got.Status)
	ts.Equal(winner, got.Helper())
}

func (ts *CoordinatorTestSuite) TestClaimLostToConcurrentUpdate() {
	s := mocks.NewMockRequestStore(ts.ctrl)
	gomock.InOrder(
		s.EXPECT().GetRequest("r1").Return(&schema.Request{ID: "r1", Kind: schema.KindHelp, RequesterID: "U1", Status: schema.StatusOpen}, nil),
		s.EXPECT().UpdateRequest("r1", gomock.Any(), schema.StatusOpen).Return(false, nil),
		s.EXPECT().GetRequest("r1").Return(&schema.Request{ID: "r1", Kind: schema.KindHelp, RequesterID: "U1", Status: schema.StatusClosed}, nil),
	)

	c := huddle.NewCoordinator(s, ts.gateway, huddle.DefaultConfig())
	result := c.Claim(context.Background(), "r1", "U2")
	ts.False(result.Success)
	ts.Equal(text("claim.inactive", nil), result.Message)
}

func (ts *CoordinatorTestSuite) TestClaimStoreFailure() {
	s := mocks.NewMockRequestStore(ts.ctrl)
	s.EXPECT().GetRequest("r1").Return(&schema.Request{ID: "r1", Kind: schema.KindHelp, RequesterID: "U1", Status: schema.StatusOpen}, nil)
	s.EXPECT().UpdateRequest("r1", gomock.Any(), schema.StatusOpen).Return(false, fmt.Errorf("connection reset"))

	c := huddle.NewCoordinator(s, ts.gateway, huddle.DefaultConfig())
	result := c.Claim(context.Background(), "r1", "U2")
	ts.False(result.Success)
	ts.Equal(text("request.failed", nil), result.Message)
}

func (ts *CoordinatorTestSuite) TestClaimRacingExpiry() {
	r := ts.request(schema.KindHelp, schema.StatusOpen, "C200")
	orchestrator := huddle.NewOrchestrator(ts.store, ts.gateway, nil, nil, huddle.DefaultConfig())
	advertisementRef := huddle.MessageRef{ChannelID: "CORIGIN", Timestamp: "1.2"}

	var updates []huddle.Message
	recordUpdate := func(_ context.Context, _ huddle.MessageRef, msg huddle.Message) { updates = append(updates, msg) }

	ts.gateway.EXPECT().InviteUsers(gomock.Any(), "C200", "U2").Return(nil)
	ts.gateway.EXPECT().PostMessage(gomock.Any(), "C200", gomock.Any()).Return(huddle.MessageRef{}, nil).Times(2)
	ts.gateway.EXPECT().OpenDirectConversation(gomock.Any(), "U1", "U2").
		DoAndReturn(func(ctx context.Context, _ ...string) (string, error) {
			ts.NoError(orchestrator.ExpireRequest(ctx, r.ID))
			return "D12", nil
		}).Times(1)
	ts.gateway.EXPECT().ArchiveChannel(gomock.Any(), "C200").Return(nil)
	ts.gateway.EXPECT().PostMessage(gomock.Any(), "D12", gomock.Any()).Return(huddle.MessageRef{}, nil)
	ts.gateway.EXPECT().OpenDirectConversation(gomock.Any(), "U1").Return("D1", nil).Times(1)
	ts.gateway.EXPECT().PostMessage(gomock.Any(), "D1", gomock.Any()).Return(huddle.MessageRef{}, nil)
	ts.gateway.EXPECT().UpdateMessage(gomock.Any(), advertisementRef, gomock.Any()).Do(recordUpdate).Return(nil).Times(2)

	result := ts.coordinator.Claim(context.Background(), r.ID, "U2")
	ts.True(result.Success)
	ts.Equal(schema.StatusClosed, ts.store.get(r.ID).Status)

	ts.Require().Len(updates, 2)
	last := updates[len(updates)-1]
	ts.Equal("🔒 Help request closed: VPN", last.Text)
	ts.Contains(last.Footer, "🔒 closed")
}

func (ts *CoordinatorTestSuite) TestClaimAfterExpiry() {
	r := ts.request(schema.KindHelp, schema.StatusOpen, "")
	orchestrator := huddle.NewOrchestrator(ts.store, ts.gateway, nil, nil, huddle.DefaultConfig())
	ts.gateway.EXPECT().UpdateMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	ts.NoError(orchestrator.ExpireRequest(context.Background(), r.ID))

	result := ts.coordinator.Claim(context.Background(), r.ID, "U2")
	ts.False(result.Success)
	ts.Equal(text("claim.inactive", nil), result.Message)
	ts.Nil(ts.store.get(r.ID).HelperID)
}

func (ts *CoordinatorTestSuite) TestDetails() {
	r := ts.request(schema.KindHelp, schema.StatusOpen, "C200")
	closedAt := time.Now()
	_, err := ts.store.UpdateRequest(r.ID, map[string]interface{}{
		"status":    string(schema.StatusClosed),
		"closed_at": closedAt,
	}, schema.StatusOpen)
	ts.NoError(err)

	result := ts.coordinator.Details(context.Background(), r.ID)
	ts.True(result.Success)
	ts.Equal("C200", result.ChannelID)
	ts.Contains(result.Message, "VPN")
	ts.Contains(result.Message, text("status.closed", nil))

	result = ts.coordinator.Details(context.Background(), "missing")
	ts.False(result.Success)
	ts.Equal(text("request.not_found", nil), result.Message)
}

func (ts *CoordinatorTestSuite) TestHandle() {
	comm := ts.request(schema.KindCommunication, schema.StatusClosed, "C100")

	result := ts.coordinator.Handle(context.Background(), huddle.ActionJoin, comm.ID, "U2")
	ts.Equal(text("join.closed", nil), result.Message)

	result = ts.coordinator.Handle(context.Background(), huddle.ActionDetails, comm.ID, "U2")
	ts.True(result.Success)

	result = ts.coordinator.Handle(context.Background(), huddle.Action("vote"), comm.ID, "U2")
	ts.False(result.Success)
	ts.Equal(text("request.unsupported_action", nil), result.Message)
}

func TestCoordinatorTestSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorTestSuite))
}
