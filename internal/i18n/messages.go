package i18n

import "golang.org/x/text/message"

// Message keys.
const (
	KeyOK                   = "ok"
	KeyInvalidInput         = "error.invalid_input"
	KeyInvalidTimeWindow    = "error.invalid_time_window"
	KeyInvalidCapacity      = "error.invalid_capacity"
	KeyInvalidScore         = "error.invalid_score"
	KeyInvalidCode          = "error.invalid_code"
	KeyInvalidImage         = "error.invalid_image"
	KeyUnauthorized         = "error.unauthorized"
	KeyInvalidCredentials   = "error.invalid_credentials"
	KeyNotCreator           = "error.not_creator"
	KeyNotAuthor            = "error.not_author"
	KeyNotOwner             = "error.not_owner"
	KeyActivityNotFound     = "error.activity_not_found"
	KeyRegistrationNotFound = "error.registration_not_found"
	KeyUserNotFound         = "error.user_not_found"
	KeyCommentNotFound      = "error.comment_not_found"
	KeyRatingNotFound       = "error.rating_not_found"
	KeyVenueNotFound        = "error.venue_not_found"
	KeyClubNotFound         = "error.club_not_found"
	KeyPaymentNotFound      = "error.payment_not_found"
	KeyNotFound             = "error.not_found"
	KeyAlreadyRegistered    = "error.already_registered"
	KeyActivityFull         = "error.activity_full"
	KeyActivityClosed       = "error.activity_closed"
	KeyInvalidTransition    = "error.invalid_transition"
	KeyAccountExists        = "error.account_exists"
	KeyAlreadyPaid          = "error.already_paid"
	KeyRateLimited          = "error.rate_limited"
	KeyTimeout              = "error.timeout"
	KeyInternal             = "error.internal"
)

var catalog = map[string][2]string{
	// key: {zh-Hans, en}
	KeyOK:                   {"成功", "ok"},
	KeyInvalidInput:         {"参数错误", "invalid input"},
	KeyInvalidTimeWindow:    {"结束时间必须晚于开始时间", "the activity must end after it starts"},
	KeyInvalidCapacity:      {"人数上限无效", "invalid participant limit"},
	KeyInvalidScore:         {"评分必须在1到5之间", "rating must be between 1 and 5"},
	KeyInvalidCode:          {"验证码错误", "invalid verification code"},
	KeyInvalidImage:         {"不支持的图片", "unsupported image"},
	KeyUnauthorized:         {"未登录", "not signed in"},
	KeyInvalidCredentials:   {"账号或密码错误", "wrong account or password"},
	KeyNotCreator:           {"只有发起人可以修改活动", "only the organizer can modify this activity"},
	KeyNotAuthor:            {"只能删除自己的评论", "you can only delete your own comments"},
	KeyNotOwner:             {"不是您的报名记录", "this registration belongs to someone else"},
	KeyActivityNotFound:     {"活动不存在", "activity not found"},
	KeyRegistrationNotFound: {"未找到报名记录", "registration not found"},
	KeyUserNotFound:         {"用户不存在", "user not found"},
	KeyCommentNotFound:      {"评论不存在", "comment not found"},
	KeyRatingNotFound:       {"尚未评分", "no rating yet"},
	KeyVenueNotFound:        {"场馆不存在", "venue not found"},
	KeyClubNotFound:         {"俱乐部不存在", "club not found"},
	KeyPaymentNotFound:      {"支付记录不存在", "payment not found"},
	KeyNotFound:             {"资源不存在", "not found"},
	KeyAlreadyRegistered:    {"您已报名此活动", "you have already registered for this activity"},
	KeyActivityFull:         {"活动已满员", "the activity is full"},
	KeyActivityClosed:       {"活动已结束或已取消", "the activity is no longer open"},
	KeyInvalidTransition:    {"活动状态不允许此操作", "the activity status does not allow this"},
	KeyAccountExists:        {"账号已存在", "account already exists"},
	KeyAlreadyPaid:          {"已支付", "already paid"},
	KeyRateLimited:          {"请求过于频繁，请稍后再试", "too many requests, try again later"},
	KeyTimeout:              {"请求超时", "request timed out"},
	KeyInternal:             {"服务器错误", "internal error"},
}

func init() {
	for key, texts := range catalog {
		_ = message.SetString(SimplifiedChinese, key, texts[0])
		_ = message.SetString(English, key, texts[1])
	}
}
