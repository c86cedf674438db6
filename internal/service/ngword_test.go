package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckNGWords(t *testing.T) {
	tests := []struct {
		name        string
		explanation string
		ngWords     []string
		want        []string
	}{
		{
			name:        "no ng words present",
			explanation: "緑色の生き物が太陽の力で栄養を作る仕組み",
			ngWords:     []string{"光合成", "植物", "光"},
			want:        nil,
		},
		{
			name:        "direct hit",
			explanation: "植物が栄養を作る仕組み",
			ngWords:     []string{"光合成", "植物", "光"},
			want:        []string{"植物"},
		},
		{
			name:        "hit inside longer word",
			explanation: "光合成という現象の説明",
			ngWords:     []string{"光"},
			want:        []string{"光"},
		},
		{
			name:        "case insensitive",
			explanation: "dnaは遺伝情報を持つ",
			ngWords:     []string{"DNA"},
			want:        []string{"DNA"},
		},
		{
			name:        "multiple hits keep ng word order",
			explanation: "植物が光を浴びてエネルギーを得る",
			ngWords:     []string{"光合成", "植物", "光", "エネルギー"},
			want:        []string{"植物", "光", "エネルギー"},
		},
		{
			name:        "empty ng list",
			explanation: "なんでもない説明",
			ngWords:     nil,
			want:        nil,
		},
		{
			name:        "empty ng word entries are skipped",
			explanation: "なんでもない説明",
			ngWords:     []string{"", "何か"},
			want:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckNGWords(tt.explanation, tt.ngWords))
		})
	}
}
