package service

import "strings"

// CheckNGWords 返回说明文中出现的NGワード子集。
// 大小写不敏感的子串匹配，包含在更长的词里也算命中
// （如NGワード「光」会命中「光合成」）。纯函数，无副作用
func CheckNGWords(explanation string, ngWords []string) []string {
	lowerText := strings.ToLower(explanation)

	var found []string
	for _, w := range ngWords {
		if w == "" {
			continue
		}
		if strings.Contains(lowerText, strings.ToLower(w)) {
			found = append(found, w)
		}
	}
	return found
}
