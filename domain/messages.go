package domain

// Message keys resolved by the localizer.
const (
	MsgWarning                  = "warning"
	MsgError                    = "error"
	MsgHaveToBeConnectedToJoin  = "haveToBeConnectedToJoin"
	MsgHaveToBeConnectedToLeave = "haveToBeConnectedToLeave"
	MsgChatRoomNotConnected     = "chatRoomNotConnected"
	MsgChatRoomAlreadyJoined    = "chatRoomAlreadyJoined"
	MsgFailedToJoinChatRoom     = "failedToJoinChatRoom"
	MsgFailedToLeaveChatRoom    = "failedToLeaveChatRoom"
)

// JoinFailureMessage returns the message key reported for a failed join.
func JoinFailureMessage(reason FailureReason) string {
	switch reason {
	case ReasonProviderNotRegistered:
		return MsgChatRoomNotConnected
	case ReasonSubscriptionAlreadyExists:
		return MsgChatRoomAlreadyJoined
	default:
		return MsgFailedToJoinChatRoom
	}
}
