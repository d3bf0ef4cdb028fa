package player

// YouTube DOM selectors
// These are isolated here because YouTube changes their DOM frequently
// Update these when automation breaks

const (
	// Channel page selectors
	VideosGrid     = `ytd-rich-grid-renderer`
	FirstThumbnail = `ytd-rich-item-renderer a#thumbnail`

	// Watch page selectors
	VideoElement = `video.html5-main-video`
	VideoTitle   = `h1.ytd-watch-metadata yt-formatted-string`
	LiveBadge    = `.ytp-live-badge[disabled="false"]`

	// Engagement selectors
	LikeButton      = `like-button-view-model button`
	SubscribeButton = `ytd-subscribe-button-renderer button`

	// Comment selectors
	CommentsSection    = `ytd-comments#comments`
	CommentPlaceholder = `ytd-comments #placeholder-area`
	CommentInput       = `ytd-comments #contenteditable-root`
	CommentSubmit      = `ytd-comments #submit-button button`
)

// Common wait conditions
const (
	WaitForGrid  = VideosGrid
	WaitForVideo = VideoElement
)
