// Package main provides localization for the pocketshow CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Play and inspect pocket video containers": "ポケットビデオコンテナの再生と検査",

		// Global flags
		"Path to YAML configuration file":        "YAML設定ファイルのパス",
		"Card directory holding clips and reports": "クリップとレポートを格納するカードディレクトリ",
		"Log level (debug, info, warn, error)":   "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                "全てのログ出力を抑制",

		// Play command
		"Play a video container from the card": "カードのビデオコンテナを再生",
		"Display sink (ascii, png, null)":      "表示シンク（ascii, png, null）",
		"Directory for png sink output":        "pngシンク出力のディレクトリ",
		"Start playback at this frame":         "このフレームから再生を開始",
		"Playing %s (%d frames, %d fps)...":    "%s を再生中 (%d フレーム, %d fps)...",
		"Playback finished":                    "再生が終了しました",
		"Interrupted, shutting down...":        "中断されました。シャットダウン中...",

		// Info command
		"Inspect a container and report its health":  "コンテナを検査して状態をレポート",
		"Write the report to this card path (Markdown)": "レポートをこのカードパスに出力（Markdown形式）",
		"Report saved to %s":                          "レポートを %s に保存しました",

		// Gen command
		"Generate a synthetic test container": "テスト用の合成コンテナを生成",
		"Number of frames":                    "フレーム数",
		"Frame rate":                          "フレームレート",
		"Frame width in pixels":               "フレームの幅（ピクセル）",
		"Frame height in pixels":              "フレームの高さ（ピクセル）",
		"Generated %d frames to %s":           "%d フレームを %s に生成しました",

		// Export command
		"Export a container to fragmented MP4": "コンテナをフラグメント化MP4にエクスポート",
		"Exported %s (%d bytes)":               "%s にエクスポートしました (%d バイト)",

		// Shell command
		"Drive the app shell interactively": "アプリシェルを対話的に操作",
		`Type "help" for commands.`:         `コマンド一覧は "help" を入力してください。`,
		"error: %v":                         "エラー: %v",
		"Commands:":                         "コマンド:",
		"List installed apps":               "インストール済みアプリを一覧表示",
		"Open menu entry or file N":         "メニュー項目またはファイル N を開く",
		"Enter directory N":                 "ディレクトリ N に入る",
		"Go to the parent directory":        "親ディレクトリへ移動",
		"Re-read the current directory":     "現在のディレクトリを再読み込み",
		"Control playback":                  "再生を制御",
		"The play/pause button":             "再生/一時停止ボタン",
		"Jump to frame N":                   "フレーム N へジャンプ",
		"Back to the launcher":              "ランチャーに戻る",
		"Redraw the screen":                 "画面を再描画",
		"Leave the shell":                   "シェルを終了",

		// Report content
		"Container Report":          "コンテナレポート",
		"Generated":                 "生成日時",
		"Source":                    "ソース",
		"Path":                      "パス",
		"Header":                    "ヘッダー",
		"complete":                  "完全",
		"missing, defaults assumed": "欠損、デフォルト値を適用",
		"Stream":                    "ストリーム",
		"Item":                      "項目",
		"Value":                     "値",
		"Declared frames":           "宣言フレーム数",
		"Frames found":              "検出フレーム数",
		"Dimensions":                "解像度",
		"Nominal length":            "公称再生時間",
		"Payload":                   "ペイロード",
		"Smallest frame":            "最小フレーム",
		"Largest frame":             "最大フレーム",
		"Notes":                     "注記",
		"the last record is cut short and will not play": "最後のレコードが途中で切れており再生できません",
		"corrupt length prefix at record":                "破損した長さプレフィックス: レコード",
		"declared":                                       "宣言値",
		"stream is shorter than its header declares":     "ストリームがヘッダーの宣言より短くなっています",
	})
}
