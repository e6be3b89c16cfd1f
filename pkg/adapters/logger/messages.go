package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Playback session messages
		"opened %s: %d frames, %d fps, %dx%d":                 "%s を開きました: %d フレーム, %d fps, %dx%d",
		"header unreadable in %s, assuming %d frames at %d fps": "%s のヘッダを読めません。%d フレーム %d fps とみなします",
		"playing from frame %d, interval %s":                  "フレーム %d から再生中 (間隔 %s)",
		"paused at frame %d":                                  "フレーム %d で一時停止しました",
		"seek to frame %d":                                    "フレーム %d へシークしました",
		"end of stream":                                       "ストリームの終端に達しました",
		"stream truncated, stopping":                          "ストリームが途中で切れています。停止します",
		"playback halted at frame %d: %v":                     "フレーム %d で再生が停止しました: %v",
		"session closed":                                      "セッションを閉じました",

		// Display sinks
		"frame %d skipped: %v":     "フレーム %d をスキップしました: %v",
		"frame %d not written: %v": "フレーム %d を書き込めませんでした: %v",
		"frame skipped: %v":        "フレームをスキップしました: %v",

		// Shell and apps
		"switched to %s":  "%s に切り替えました",
		"already on %s":   "すでに %s を表示中です",
		"launching %s":    "%s を起動中",
		"opening %s":      "%s を開いています",
		"list %s: %v":     "%s を一覧できません: %v",
		"loaded %s: %d bytes": "%s を読み込みました: %d バイト",
	})
}
