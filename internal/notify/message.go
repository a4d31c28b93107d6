package notify

import (
	"fmt"
	"strings"

	"github.com/minhvuongle/yenvang-backend/pkg/db/models"
	"github.com/minhvuongle/yenvang-backend/pkg/money"
)

const divider = "━━━━━━━━━━━━━━━━━━━━━━━━━"

// formatOrderMessage renders the order as the Markdown message the shop staff
// read in the order chat. Vietnamese copy matches the storefront.
func formatOrderMessage(order *models.Order) string {
	var b strings.Builder

	b.WriteString("🔔 *ĐƠN HÀNG MỚI* 🔔\n")
	b.WriteString(divider + "\n\n")
	fmt.Fprintf(&b, "📋 *Mã đơn hàng:* `%s`\n", order.ID)
	fmt.Fprintf(&b, "📅 *Thời gian:* %s\n\n", order.CreatedAt.Format("02/01/2006 15:04"))

	b.WriteString(divider + "\n")
	b.WriteString("👤 *THÔNG TIN KHÁCH HÀNG*\n")
	b.WriteString(divider + "\n\n")
	fmt.Fprintf(&b, "Họ tên: *%s*\n", order.CustomerName)
	fmt.Fprintf(&b, "Điện thoại: *%s*\n", order.PhoneNumber)
	fmt.Fprintf(&b, "Địa chỉ: %s\n", order.Address)
	if order.Note != nil && *order.Note != "" {
		fmt.Fprintf(&b, "Ghi chú: _%s_\n", *order.Note)
	}
	b.WriteString("\n" + divider + "\n")
	b.WriteString("📦 *CHI TIẾT SẢN PHẨM*\n")
	b.WriteString(divider + "\n\n")

	for i, item := range order.Items {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, item.ProductName)
		if options := selectionLabels(item); options != "" {
			fmt.Fprintf(&b, "   Loại: %s\n", options)
		}
		fmt.Fprintf(&b, "   Số lượng: *%d*\n", item.Quantity)
		fmt.Fprintf(&b, "   Thành tiền: *%s*\n", money.FormatVND(item.TotalPrice))
		if i < len(order.Items)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n" + divider + "\n")
	fmt.Fprintf(&b, "💰 *TỔNG CỘNG: %s*\n", money.FormatVND(order.TotalPrice))
	b.WriteString("💵 Thanh toán: *COD (Tiền mặt)*\n\n")
	b.WriteString("✅ Vui lòng xác nhận và xử lý đơn hàng!")

	return b.String()
}

func selectionLabels(item models.OrderLineItem) string {
	options := make([]string, 0, 3)
	for _, sel := range []*string{item.SelectedType, item.SelectedWeight, item.SelectedVolume} {
		if sel != nil && *sel != "" {
			options = append(options, *sel)
		}
	}
	return strings.Join(options, " • ")
}

// formatConsultationMessage renders a consultation request for the
// consultation chat.
func formatConsultationMessage(req ConsultationRequest) string {
	var b strings.Builder

	b.WriteString("💬 *YÊU CẦU TƯ VẤN MỚI* 💬\n")
	b.WriteString(divider + "\n\n")
	fmt.Fprintf(&b, "📅 *Thời gian:* %s\n\n", req.CreatedAt.Format("02/01/2006 15:04"))

	b.WriteString(divider + "\n")
	b.WriteString("👤 *THÔNG TIN KHÁCH HÀNG*\n")
	b.WriteString(divider + "\n\n")
	fmt.Fprintf(&b, "Họ tên: *%s*\n", req.Name)
	fmt.Fprintf(&b, "Điện thoại: *%s*\n", req.Phone)
	if req.Email != nil && *req.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", *req.Email)
	}
	fmt.Fprintf(&b, "Chủ đề: *%s*\n\n", req.Subject)

	b.WriteString(divider + "\n")
	b.WriteString("💭 *NỘI DUNG*\n")
	b.WriteString(divider + "\n\n")
	b.WriteString(req.Message + "\n\n")
	b.WriteString("✅ Vui lòng liên hệ lại khách hàng sớm nhất!")

	return b.String()
}
