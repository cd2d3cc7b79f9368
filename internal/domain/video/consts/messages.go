package consts

// User-facing replies
const (
	WelcomeMessage = "👋 Chào mừng bạn đến với Video Downloader Bot!\n\n" +
		"🎬 Tôi có thể giúp bạn tải video từ:\n" +
		"• YouTube\n" +
		"• Facebook\n" +
		"• Instagram\n\n" +
		"📝 Cách sử dụng: Chỉ cần gửi link video cho tôi!\n\n" +
		"💡 Gõ /help để xem hướng dẫn chi tiết."

	HelpMessage = "📖 Hướng dẫn sử dụng Video Downloader Bot\n\n" +
		"🎯 Các nền tảng được hỗ trợ:\n" +
		"• YouTube (youtube.com, youtu.be)\n" +
		"• Facebook (facebook.com, fb.watch)\n" +
		"• Instagram (instagram.com/p/, instagram.com/reel/)\n\n" +
		"📝 Cách sử dụng:\n" +
		"1. Copy link video từ nền tảng bạn muốn\n" +
		"2. Gửi link đó cho bot\n" +
		"3. Đợi bot tải và gửi video về cho bạn\n\n" +
		"⚠️ Lưu ý:\n" +
		"• Video phải có kích thước dưới 50MB\n" +
		"• Một số video riêng tư có thể không tải được\n\n" +
		"🔧 Các lệnh:\n" +
		"/start - Bắt đầu sử dụng bot\n" +
		"/help - Xem hướng dẫn này\n" +
		"/status - Kiểm tra trạng thái bot"

	StatusMessage = "✅ Bot đang hoạt động bình thường!\n\n" +
		"🎬 Sẵn sàng tải video từ:\n" +
		"• YouTube ✓\n" +
		"• Facebook ✓\n" +
		"• Instagram ✓\n\n" +
		"📤 Gửi link video để bắt đầu!"

	NoLinkMessage = "❓ Tôi không tìm thấy link video trong tin nhắn của bạn.\n\n" +
		"📝 Vui lòng gửi link video từ:\n" +
		"• YouTube\n" +
		"• Facebook\n" +
		"• Instagram\n\n" +
		"💡 Gõ /help để xem hướng dẫn chi tiết."

	UnsupportedPlatformMessage = "❌ Nền tảng này chưa được hỗ trợ.\n\n" +
		"🎬 Các nền tảng được hỗ trợ:\n" +
		"• YouTube (youtube.com, youtu.be)\n" +
		"• Facebook (facebook.com, fb.watch)\n" +
		"• Instagram (instagram.com)"
)
