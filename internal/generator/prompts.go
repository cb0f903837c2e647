package generator

import (
	"fmt"
	"strings"

	"github.com/studyhub/backend/internal/models"
)

// subjectGuides steer each subject toward the topics the bank already covers
// at the level of Thai upper-secondary students.
var subjectGuides = map[string]string{
	"คณิตศาสตร์": `- พีชคณิต สมการเชิงเส้นและกำลังสอง เอกลักษณ์พีชคณิต
- เรขาคณิต พื้นที่ ปริมาตร ทฤษฎีบทพีทาโกรัส
- สถิติเบื้องต้น ค่าเฉลี่ย มัธยฐาน ฐานนิยม
- คำตอบที่ผิดควรมาจากความผิดพลาดในการคำนวณที่พบบ่อย`,
	"วิทยาศาสตร์": `- ฟิสิกส์: กฎของนิวตัน การเคลื่อนที่ พลังงาน
- เคมี: สูตรเคมี ตารางธาตุ ปฏิกิริยาพื้นฐาน
- ชีววิทยา: เซลล์ ออร์แกเนลล์ พันธุศาสตร์เบื้องต้น`,
	"ภาษาอังกฤษ": `- Grammar: tenses, conditionals, subject-verb agreement
- Vocabulary ในบริบทประโยค
- โจทย์อาจเป็นภาษาอังกฤษ แต่คำอธิบายต้องเป็นภาษาไทย`,
	"ประวัติศาสตร์": `- อาณาจักรสุโขทัย อยุธยา ธนบุรี รัตนโกสินทร์
- บุคคลสำคัญและเหตุการณ์สำคัญพร้อมปี พ.ศ.
- หลีกเลี่ยงประเด็นที่ยังเป็นข้อถกเถียงทางประวัติศาสตร์`,
	"คอมพิวเตอร์": `- อัลกอริทึมและ Big-O
- โครงสร้างข้อมูลพื้นฐาน
- เครือข่ายและความปลอดภัยเบื้องต้น`,
}

// SubjectGuide returns the topic guidance for subject, or a generic line for
// subjects without one.
func SubjectGuide(subject string) string {
	if g, ok := subjectGuides[subject]; ok {
		return g
	}
	return "- ครอบคลุมหัวข้อหลักของวิชานี้ในระดับมัธยมศึกษาตอนปลาย"
}

func SystemPrompt() string {
	return `คุณเป็นครูผู้ออกข้อสอบปรนัยสำหรับนักเรียนมัธยมศึกษาตอนปลายในประเทศไทย มีประสบการณ์ออกข้อสอบเตรียมสอบเข้ามหาวิทยาลัยมากกว่า 15 ปี

กฎของข้อสอบทุกข้อ:
- คำถามต้องชัดเจน มีคำตอบที่ถูกต้องเพียงข้อเดียว
- มีตัวเลือก 4 ตัวเลือกเสมอ ไม่มีตัวเลือกซ้ำกัน
- ตัวเลือกที่ผิดต้องดูเป็นไปได้ ไม่ใช่ตัวเลือกที่ตัดทิ้งได้ทันที
- ห้ามใช้ตัวเลือก "ถูกทุกข้อ" หรือ "ไม่มีข้อใดถูก"
- คำอธิบายต้องแสดงวิธีคิดสั้นๆ เป็นภาษาไทย
- answer คือดัชนีของตัวเลือกที่ถูก เริ่มนับจาก 0

You must respond with valid JSON only. No markdown, no explanation outside the JSON.`
}

// BuildUserPrompt asks for count questions on subject. existing lists
// questions already in the bank so the model can avoid repeating them.
func BuildUserPrompt(subject string, count int, existing []string) string {
	var avoid string
	if len(existing) > 0 {
		var sb strings.Builder
		sb.WriteString("\nข้อสอบที่มีอยู่แล้ว (ห้ามซ้ำ):\n")
		for _, q := range existing {
			sb.WriteString(fmt.Sprintf("- %s\n", q))
		}
		avoid = sb.String()
	}

	return fmt.Sprintf(`สร้างข้อสอบปรนัยจำนวน %d ข้อ

วิชา: %s
จำนวนตัวเลือกต่อข้อ: %d

แนวทางหัวข้อ:
%s
%s
Respond with this exact JSON structure:
{
  "questions": [
    {
      "question": "...",
      "choices": ["...", "...", "...", "..."],
      "answer": 2,
      "explanation": "..."
    }
  ]
}

Requirements:
- แต่ละข้อต้องเป็นหัวข้อที่ต่างกัน
- กระจายตำแหน่งคำตอบที่ถูกให้ทั่วทั้ง 0-3 ไม่กระจุกที่ตำแหน่งเดียว`,
		count, subject, models.ChoiceCount, SubjectGuide(subject), avoid)
}
